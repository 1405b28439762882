package scanflow

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/skovlund/birdieledger/internal/metrics"
	"github.com/skovlund/birdieledger/internal/pubsub"
	"github.com/skovlund/birdieledger/internal/reconcile"
	"github.com/skovlund/birdieledger/internal/scan"
	"github.com/skovlund/birdieledger/internal/session"
	"github.com/skovlund/birdieledger/internal/strokes"
)

// New creates a new Processor.
func New(sessions SessionStore, players PlayerStore, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		sessions: sessions,
		players:  players,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// ProcessScan reconciles a completed scan against its session roster, saves
// the matched scores and notifies the channel. Unmatched participants are
// flagged for manual assignment rather than being defaulted.
func (p *Processor) ProcessScan(result scan.Result, dryRun bool) error {
	log.Info("Processing scan", "sessionID", result.SessionID, "rows", len(result.Players))

	sess, err := p.sessions.GetSession(result.SessionID)
	if err != nil {
		return fmt.Errorf("failed to load session %s: %w", result.SessionID, err)
	}

	participants := make([]reconcile.Participant, len(sess.Participants))
	for i, part := range sess.Participants {
		participants[i] = reconcile.Participant{
			PlayerID: part.PlayerID,
			Name:     part.Name,
			Aliases:  part.Aliases,
		}
	}
	entries := make([]reconcile.Entry, len(result.Players))
	for i, row := range result.Players {
		entries[i] = reconcile.Entry{Index: i, Name: row.Name}
	}

	startTime := time.Now()
	outcome := reconcile.Solve(participants, entries)
	p.metrics.ObserveReconciliationDuration(time.Since(startTime).Seconds())

	stored := storedEntries(result.Players)
	records := make(map[string]session.AssignmentRecord, len(outcome.Assignments))

	for _, a := range outcome.Assignments {
		part := sess.Participants[a.Participant]
		records[part.PlayerID] = session.AssignmentRecord{EntryIndex: a.Entry, Distance: a.Distance}

		if dryRun {
			log.Info("[Dry Run] Would save scores", "sessionID", sess.ID, "player", part.Name, "entry", a.Entry)
			continue
		}
		if err := p.sessions.SaveScores(sess.ID, part.PlayerID, stored[a.Entry].Scores); err != nil {
			return fmt.Errorf("failed to save scores for %s: %w", part.PlayerID, err)
		}
		if err := p.sessions.SetNeedsManual(sess.ID, part.PlayerID, false); err != nil {
			log.Error("Failed to clear manual flag", "error", err, "sessionID", sess.ID, "player", part.PlayerID)
		}
	}

	for _, pi := range outcome.Unassigned {
		part := sess.Participants[pi]
		log.Warn("No scanned row for participant", "sessionID", sess.ID, "player", part.Name)
		if dryRun {
			continue
		}
		if err := p.sessions.SetNeedsManual(sess.ID, part.PlayerID, true); err != nil {
			log.Error("Failed to flag participant for manual assignment", "error", err, "sessionID", sess.ID, "player", part.PlayerID)
		}
	}

	// Alias writes are best-effort. A failed write costs one extra fuzzy
	// match next time, never the scan.
	for _, c := range outcome.AliasCandidates {
		if dryRun {
			log.Info("[Dry Run] Would learn alias", "player", c.PlayerID, "alias", c.Alias)
			continue
		}
		if err := p.players.AddAlias(c.PlayerID, c.Alias); err != nil {
			p.metrics.IncAliasWriteFailures()
			log.Error("Failed to store alias", "error", err, "player", c.PlayerID, "alias", c.Alias)
		}
	}

	if !dryRun {
		if err := p.sessions.SaveScanState(sess.ID, stored, records); err != nil {
			return fmt.Errorf("failed to save scan state: %w", err)
		}
		if err := p.sessions.SetStatus(sess.ID, session.StatusScanned); err != nil {
			return fmt.Errorf("failed to mark session scanned: %w", err)
		}
	}

	if err := p.notifier.SendScanSummary(sess, outcome, stored, dryRun); err != nil {
		log.Error("Failed to send scan summary", "error", err, "sessionID", sess.ID)
	}

	allocations, err := p.Allocations(sess)
	if err != nil {
		log.Error("Failed to compute stroke allocations", "error", err, "sessionID", sess.ID)
	} else {
		if err := p.notifier.SendStrokeSheet(sess, allocations, dryRun); err != nil {
			log.Error("Failed to send stroke sheet", "error", err, "sessionID", sess.ID)
		}
		if !dryRun {
			if err := p.pubsub.SendMessage(pubsub.EventAllocationReady, allocations); err != nil {
				log.Error("Failed to publish allocations", "error", err, "sessionID", sess.ID)
			}
		}
	}

	p.metrics.IncScansProcessed()
	log.Info("Finished processing scan", "sessionID", sess.ID,
		"assigned", len(outcome.Assignments), "unassigned", len(outcome.Unassigned))
	return nil
}

// CycleAssignment rotates the given participant to the next scanned entry,
// bumping any current owner, and re-saves scores to match the new bindings.
func (p *Processor) CycleAssignment(sessionID, playerID string, dryRun bool) (reconcile.Result, error) {
	sess, err := p.sessions.GetSession(sessionID)
	if err != nil {
		return reconcile.Result{}, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	entries, records, err := p.sessions.GetScanState(sessionID)
	if err != nil {
		return reconcile.Result{}, fmt.Errorf("failed to load scan state: %w", err)
	}
	if len(entries) == 0 {
		return reconcile.Result{}, fmt.Errorf("session %s has no scanned entries", sessionID)
	}

	target := -1
	indexByPlayer := make(map[string]int, len(sess.Participants))
	for i, part := range sess.Participants {
		indexByPlayer[part.PlayerID] = i
		if part.PlayerID == playerID {
			target = i
		}
	}
	if target == -1 {
		return reconcile.Result{}, fmt.Errorf("player %s is not in session %s", playerID, sessionID)
	}

	assigned := make(map[int]int, len(records))
	for id, rec := range records {
		if idx, ok := indexByPlayer[id]; ok {
			assigned[idx] = rec.EntryIndex
		}
	}

	assigned = reconcile.Cycle(assigned, target, len(entries))
	log.Info("Cycled assignment", "sessionID", sessionID, "player", playerID, "entry", assigned[target])

	outcome := reconcile.Result{}
	newRecords := make(map[string]session.AssignmentRecord, len(assigned))
	for i, part := range sess.Participants {
		entry, ok := assigned[i]
		if !ok {
			outcome.Unassigned = append(outcome.Unassigned, i)
			if !dryRun {
				if err := p.sessions.SaveScores(sessionID, part.PlayerID, nil); err != nil {
					return reconcile.Result{}, fmt.Errorf("failed to clear scores for %s: %w", part.PlayerID, err)
				}
				if err := p.sessions.SetNeedsManual(sessionID, part.PlayerID, true); err != nil {
					log.Error("Failed to flag participant for manual assignment", "error", err, "player", part.PlayerID)
				}
			}
			continue
		}
		outcome.Assignments = append(outcome.Assignments, reconcile.Assignment{Participant: i, Entry: entry})
		newRecords[part.PlayerID] = session.AssignmentRecord{EntryIndex: entry}
		if !dryRun {
			if err := p.sessions.SaveScores(sessionID, part.PlayerID, entries[entry].Scores); err != nil {
				return reconcile.Result{}, fmt.Errorf("failed to save scores for %s: %w", part.PlayerID, err)
			}
			if err := p.sessions.SetNeedsManual(sessionID, part.PlayerID, false); err != nil {
				log.Error("Failed to clear manual flag", "error", err, "player", part.PlayerID)
			}
		}
	}

	if !dryRun {
		if err := p.sessions.SaveScanState(sessionID, entries, newRecords); err != nil {
			return reconcile.Result{}, fmt.Errorf("failed to save scan state: %w", err)
		}
	}

	if err := p.notifier.SendScanSummary(sess, outcome, entries, dryRun); err != nil {
		log.Error("Failed to send scan summary", "error", err, "sessionID", sessionID)
	}
	return outcome, nil
}

// Allocations computes the stroke sheet for a session from its current
// participant handicaps and course difficulty.
func (p *Processor) Allocations(sess *session.Session) ([]strokes.Allocation, error) {
	course, err := p.sessions.CourseDifficulty(sess.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve course difficulty: %w", err)
	}

	handicaps := make([]strokes.PlayerHandicap, len(sess.Participants))
	for i, part := range sess.Participants {
		handicaps[i] = strokes.PlayerHandicap{
			PlayerID: part.PlayerID,
			Handicap: part.RoundHandicap(),
		}
	}
	return strokes.Allocate(handicaps, course)
}

func storedEntries(players []scan.ScannedPlayer) []session.StoredEntry {
	out := make([]session.StoredEntry, len(players))
	for i, row := range players {
		entry := session.StoredEntry{Index: i, Name: row.Name}
		for _, s := range row.CleanScores() {
			entry.Scores = append(entry.Scores, session.HoleScore{Hole: s.Hole, Strokes: *s.Score})
		}
		out[i] = entry
	}
	return out
}
