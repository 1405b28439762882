package slack

import (
	"fmt"
	"strings"

	"github.com/skovlund/birdieledger/internal/reconcile"
	"github.com/skovlund/birdieledger/internal/session"
	"github.com/skovlund/birdieledger/internal/strokes"
	"github.com/slack-go/slack"
)

// formatScanSummary creates the Slack message for a reconciled scorecard scan
// using Block Kit.
func (s *Notifier) formatScanSummary(sess *session.Session, result reconcile.Result, entries []session.StoredEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⛳ Scorecard scanned!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Game: %s (%s), bet per %s", sess.GameType, sess.GameMode, sess.BetUnit)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	entryNames := make(map[int]string, len(entries))
	for _, e := range entries {
		entryNames[e.Index] = e.Name
	}

	var lines []string
	for _, a := range result.Assignments {
		if a.Participant >= len(sess.Participants) {
			continue
		}
		p := sess.Participants[a.Participant]
		line := fmt.Sprintf("• %s ← card row %q", p.Name, entryNames[a.Entry])
		if a.Distance > 0 {
			line += " (fuzzy match)"
		}
		lines = append(lines, line)
	}
	for _, pi := range result.Unassigned {
		if pi >= len(sess.Participants) {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s — no card row, assign manually ⚠️", sess.Participants[pi].Name))
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	if len(result.AliasCandidates) > 0 {
		var aliases []string
		for _, c := range result.AliasCandidates {
			aliases = append(aliases, c.Alias)
		}
		contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Learned spellings: %s", strings.Join(aliases, ", ")), true, false)
		blocks = append(blocks, slack.NewContextBlock("", contextText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatStrokeSheet creates the Slack message with each player's extra
// strokes for the round.
func (s *Notifier) formatStrokeSheet(sess *session.Session, allocations []strokes.Allocation) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "📋 Stroke sheet", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	names := make(map[string]string, len(sess.Participants))
	for _, p := range sess.Participants {
		names[p.PlayerID] = p.Name
	}

	var lines []string
	approximated := false
	for _, a := range allocations {
		name := names[a.PlayerID]
		if name == "" {
			name = a.PlayerID
		}
		approximated = approximated || a.DifficultyApproxed

		switch {
		case a.StrokesReceived == 0:
			lines = append(lines, fmt.Sprintf("• %s plays scratch for the group", name))
		case a.StrokeOnEveryHole:
			lines = append(lines, fmt.Sprintf("• %s gets %d strokes: one every hole, two on %s",
				name, a.StrokesReceived, holeList(a.DoubleStrokeHoles)))
		default:
			lines = append(lines, fmt.Sprintf("• %s gets %d strokes on %s",
				name, a.StrokesReceived, holeList(a.SingleStrokeHoles)))
		}
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	if approximated {
		warn := slack.NewTextBlockObject("plain_text", "⚠️ No stroke index on file for this course; holes ranked by number.", true, false)
		blocks = append(blocks, slack.NewContextBlock("", warn))
	}

	return slack.NewBlockMessage(blocks...)
}

func holeList(holes []int) string {
	if len(holes) == 0 {
		return "no holes"
	}
	parts := make([]string, len(holes))
	for i, h := range holes {
		parts[i] = fmt.Sprintf("%d", h)
	}
	return "holes " + strings.Join(parts, ", ")
}
