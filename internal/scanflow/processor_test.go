package scanflow

import (
	"errors"
	"testing"

	"github.com/skovlund/birdieledger/internal/format"
	"github.com/skovlund/birdieledger/internal/metrics"
	"github.com/skovlund/birdieledger/internal/notifier"
	"github.com/skovlund/birdieledger/internal/pubsub"
	"github.com/skovlund/birdieledger/internal/roster"
	"github.com/skovlund/birdieledger/internal/scan"
	"github.com/skovlund/birdieledger/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int) *int { return &v }

func fptr(v float64) *float64 { return &v }

func foursomeSession() *session.Session {
	return &session.Session{
		ID:       "sess-1",
		GameType: format.StrokePlay,
		GameMode: format.Individual,
		BetUnit:  format.BetWinner,
		Status:   session.StatusOpen,
		Participants: []session.Participant{
			{PlayerID: "p1", Position: 0, Name: "Michael", HandicapIndex: fptr(10)},
			{PlayerID: "p2", Position: 1, Name: "Jonas", HandicapIndex: fptr(18)},
			{PlayerID: "p3", Position: 2, Name: "Sofie", HandicapIndex: fptr(24)},
			{PlayerID: "p4", Position: 3, Name: "Henrik", HandicapIndex: fptr(10)},
		},
	}
}

func scanFor(sessionID string, names ...string) scan.Result {
	result := scan.Result{SessionID: sessionID}
	for _, name := range names {
		row := scan.ScannedPlayer{Name: name, NameConfidence: 0.9}
		for h := 1; h <= 18; h++ {
			row.Scores = append(row.Scores, scan.HoleScore{Hole: h, Score: ptr(4 + h%3), Confidence: 0.95})
		}
		result.Players = append(result.Players, row)
	}
	return result
}

func TestProcessor_ProcessScan(t *testing.T) {
	t.Run("clean scan saves scores, notifies and marks the session scanned", func(t *testing.T) {
		// Setup
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return foursomeSession(), nil
		}

		// Execute
		err := p.ProcessScan(scanFor("sess-1", "Michael", "Jonas", "Sofie", "Henrik"), false)
		require.NoError(t, err)

		// Assert
		require.Len(t, sessions.SaveScoresCalls, 4, "Each participant should get scores saved")
		for _, call := range sessions.SaveScoresCalls {
			assert.Equal(t, "sess-1", call.SessionID)
			assert.Len(t, call.Scores, 18)
		}
		require.Len(t, sessions.SetStatusCalls, 1)
		assert.Equal(t, session.StatusScanned, sessions.SetStatusCalls[0].Status)
		require.Len(t, sessions.SaveScanStateCalls, 1)
		assert.Len(t, sessions.SaveScanStateCalls[0].Entries, 4)
		require.Len(t, notif.SendScanSummaryCalls, 1)
		require.Len(t, notif.SendStrokeSheetCalls, 1)
		require.Len(t, ps.SendMessageCalls, 1, "Allocations should be published")
		assert.Equal(t, "allocation-ready", ps.SendMessageCalls[0].Topic)
		assert.Equal(t, 1, metr.ScansProcessedCount)
		assert.Len(t, players.AddAliasCalls, 0, "Exact matches should not create aliases")
	})

	t.Run("fuzzy match stores the scanned spelling as an alias", func(t *testing.T) {
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return foursomeSession(), nil
		}

		err := p.ProcessScan(scanFor("sess-1", "Miguel", "Jonas", "Sofie", "Henrik"), false)
		require.NoError(t, err)

		require.Len(t, players.AddAliasCalls, 1)
		assert.Equal(t, "p1", players.AddAliasCalls[0].PlayerID)
		assert.Equal(t, "Miguel", players.AddAliasCalls[0].Alias)
	})

	t.Run("alias write failure is swallowed and counted", func(t *testing.T) {
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return foursomeSession(), nil
		}
		players.AddAliasFunc = func(playerID, alias string) error {
			return errors.New("disk full")
		}

		err := p.ProcessScan(scanFor("sess-1", "Miguel", "Jonas", "Sofie", "Henrik"), false)
		require.NoError(t, err, "A failed alias write must not fail the scan")
		assert.Equal(t, 1, metr.AliasWriteFailuresCount)
		require.Len(t, sessions.SetStatusCalls, 1, "The session should still be marked scanned")
	})

	t.Run("missing rows flag participants for manual assignment", func(t *testing.T) {
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return foursomeSession(), nil
		}

		// Only two of four participants appear on the card.
		err := p.ProcessScan(scanFor("sess-1", "Michael", "Jonas"), false)
		require.NoError(t, err)

		require.Len(t, sessions.SaveScoresCalls, 2)
		var flagged []string
		for _, call := range sessions.SetNeedsManualCalls {
			if call.NeedsManual {
				flagged = append(flagged, call.PlayerID)
			}
		}
		assert.ElementsMatch(t, []string{"p3", "p4"}, flagged)
	})

	t.Run("unreadable cells are dropped before saving", func(t *testing.T) {
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sess := foursomeSession()
		sess.Participants = sess.Participants[:1]
		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return sess, nil
		}

		result := scan.Result{
			SessionID: "sess-1",
			Players: []scan.ScannedPlayer{{
				Name: "Michael",
				Scores: []scan.HoleScore{
					{Hole: 1, Score: ptr(4), Confidence: 0.9},
					{Hole: 2, Score: nil, Confidence: 0.1},
					{Hole: 3, Score: ptr(5), Confidence: 0.8},
				},
			}},
		}

		err := p.ProcessScan(result, false)
		require.NoError(t, err)

		require.Len(t, sessions.SaveScoresCalls, 1)
		require.Len(t, sessions.SaveScoresCalls[0].Scores, 2)
		assert.Equal(t, []session.HoleScore{{Hole: 1, Strokes: 4}, {Hole: 3, Strokes: 5}}, sessions.SaveScoresCalls[0].Scores)
	})

	t.Run("dry run writes nothing but still notifies", func(t *testing.T) {
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return foursomeSession(), nil
		}

		err := p.ProcessScan(scanFor("sess-1", "Miguel", "Jonas", "Sofie", "Henrik"), true)
		require.NoError(t, err)

		assert.Len(t, sessions.SaveScoresCalls, 0)
		assert.Len(t, sessions.SetStatusCalls, 0)
		assert.Len(t, sessions.SaveScanStateCalls, 0)
		assert.Len(t, players.AddAliasCalls, 0)
		assert.Len(t, ps.SendMessageCalls, 0)
		require.Len(t, notif.SendScanSummaryCalls, 1)
		assert.True(t, notif.SendScanSummaryCalls[0].DryRun)
	})

	t.Run("unknown session fails the scan", func(t *testing.T) {
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return nil, errors.New("no such session")
		}

		err := p.ProcessScan(scanFor("missing", "Michael"), false)
		require.Error(t, err)
		assert.Len(t, notif.SendScanSummaryCalls, 0)
	})
}

func TestProcessor_CycleAssignment(t *testing.T) {
	storedState := func() ([]session.StoredEntry, map[string]session.AssignmentRecord) {
		entries := []session.StoredEntry{
			{Index: 0, Name: "Michael", Scores: []session.HoleScore{{Hole: 1, Strokes: 4}}},
			{Index: 1, Name: "Jonas", Scores: []session.HoleScore{{Hole: 1, Strokes: 5}}},
			{Index: 2, Name: "Sofie", Scores: []session.HoleScore{{Hole: 1, Strokes: 6}}},
			{Index: 3, Name: "Henrik", Scores: []session.HoleScore{{Hole: 1, Strokes: 7}}},
		}
		records := map[string]session.AssignmentRecord{
			"p1": {EntryIndex: 0},
			"p2": {EntryIndex: 1},
			"p3": {EntryIndex: 2},
			"p4": {EntryIndex: 3},
		}
		return entries, records
	}

	t.Run("cycling swaps with the next entry's owner", func(t *testing.T) {
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return foursomeSession(), nil
		}
		sessions.GetScanStateFunc = func(sessionID string) ([]session.StoredEntry, map[string]session.AssignmentRecord, error) {
			entries, records := storedState()
			return entries, records, nil
		}

		outcome, err := p.CycleAssignment("sess-1", "p1", false)
		require.NoError(t, err)

		// p1 moves from entry 0 to entry 1, p2 takes entry 0.
		a, ok := outcome.EntryFor(0)
		require.True(t, ok)
		assert.Equal(t, 1, a.Entry)
		b, ok := outcome.EntryFor(1)
		require.True(t, ok)
		assert.Equal(t, 0, b.Entry)

		require.Len(t, sessions.SaveScanStateCalls, 1)
		saved := sessions.SaveScanStateCalls[0].Assignments
		assert.Equal(t, 1, saved["p1"].EntryIndex)
		assert.Equal(t, 0, saved["p2"].EntryIndex)

		// Scores follow the new bindings.
		scoresByPlayer := map[string][]session.HoleScore{}
		for _, call := range sessions.SaveScoresCalls {
			scoresByPlayer[call.PlayerID] = call.Scores
		}
		assert.Equal(t, 5, scoresByPlayer["p1"][0].Strokes)
		assert.Equal(t, 4, scoresByPlayer["p2"][0].Strokes)
	})

	t.Run("unknown player is rejected", func(t *testing.T) {
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return foursomeSession(), nil
		}
		sessions.GetScanStateFunc = func(sessionID string) ([]session.StoredEntry, map[string]session.AssignmentRecord, error) {
			entries, records := storedState()
			return entries, records, nil
		}

		_, err := p.CycleAssignment("sess-1", "ghost", false)
		require.Error(t, err)
		assert.Len(t, sessions.SaveScanStateCalls, 0)
	})

	t.Run("no scanned entries is rejected", func(t *testing.T) {
		sessions := session.NewMock()
		players := roster.NewMock()
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		ps := pubsub.NewMock("TEST")
		p := New(sessions, players, notif, metr, ps)

		sessions.GetSessionFunc = func(sessionID string) (*session.Session, error) {
			return foursomeSession(), nil
		}

		_, err := p.CycleAssignment("sess-1", "p1", false)
		require.Error(t, err)
	})
}

func TestProcessor_Allocations(t *testing.T) {
	sessions := session.NewMock()
	players := roster.NewMock()
	notif := notifier.NewMock()
	metr := metrics.NewMock()
	ps := pubsub.NewMock("TEST")
	p := New(sessions, players, notif, metr, ps)

	allocations, err := p.Allocations(foursomeSession())
	require.NoError(t, err)
	require.Len(t, allocations, 4)

	byPlayer := map[string]int{}
	total := 0
	for _, a := range allocations {
		byPlayer[a.PlayerID] = a.StrokesReceived
		total += a.StrokesReceived
	}
	// Baseline is the lowest handicap (10), shared by p1 and p4.
	assert.Equal(t, 0, byPlayer["p1"])
	assert.Equal(t, 0, byPlayer["p4"])
	assert.Equal(t, 8, byPlayer["p2"])
	assert.Equal(t, 14, byPlayer["p3"])
	assert.Equal(t, 22, total)
}
