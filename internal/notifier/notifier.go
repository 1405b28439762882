package notifier

import (
	"github.com/skovlund/birdieledger/internal/reconcile"
	"github.com/skovlund/birdieledger/internal/session"
	"github.com/skovlund/birdieledger/internal/strokes"
)

// Notifier defines a high-level interface for sending notifications about
// business events. This decouples the rest of the application from the
// specific notification provider (e.g., Slack).
type Notifier interface {
	// SendScanSummary reports a completed reconciliation: who matched which
	// scanned row and who still needs manual assignment.
	SendScanSummary(sess *session.Session, result reconcile.Result, entries []session.StoredEntry, dryRun bool) error
	// SendStrokeSheet posts the per-player stroke allocation for the round.
	SendStrokeSheet(sess *session.Session, allocations []strokes.Allocation, dryRun bool) error

	// FormatStrokeSheetResponse formats a stroke sheet for a slash command
	// response.
	FormatStrokeSheetResponse(sess *session.Session, allocations []strokes.Allocation) (any, error)
}
