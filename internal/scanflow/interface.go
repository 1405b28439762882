package scanflow

import (
	"github.com/skovlund/birdieledger/internal/notifier"
	"github.com/skovlund/birdieledger/internal/session"
	"github.com/skovlund/birdieledger/internal/strokes"
)

// SessionStore defines the session operations required by the processor.
type SessionStore interface {
	GetSession(sessionID string) (*session.Session, error)
	SetStatus(sessionID string, status session.Status) error
	SetNeedsManual(sessionID, playerID string, needsManual bool) error
	CourseDifficulty(courseID *string) (strokes.CourseDifficulty, error)
	SaveScores(sessionID, playerID string, scores []session.HoleScore) error
	SaveScanState(sessionID string, entries []session.StoredEntry, assignments map[string]session.AssignmentRecord) error
	GetScanState(sessionID string) ([]session.StoredEntry, map[string]session.AssignmentRecord, error)
}

// PlayerStore defines the roster operations required by the processor.
type PlayerStore interface {
	AddAlias(playerID, alias string) error
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
