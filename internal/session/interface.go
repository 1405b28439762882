package session

import (
	"github.com/skovlund/birdieledger/internal/format"
	"github.com/skovlund/birdieledger/internal/strokes"
)

// SessionStore defines the interface for interacting with session data.
type SessionStore interface {
	// CreateSession validates the game type / mode / player count combination
	// and rejects illegal ones before anything is written.
	CreateSession(params CreateSessionParams) (*Session, error)
	GetSession(sessionID string) (*Session, error)
	SetStatus(sessionID string, status Status) error
	// SetGameType re-validates the format for the current roster and
	// normalizes the bet unit to one the new game type supports.
	SetGameType(sessionID string, gameType format.GameType, mode format.GameMode) error

	UpdateParticipantHandicap(sessionID, playerID string, value float64) error
	UpdateParticipantTee(sessionID, playerID, teeName, teeGender string) error
	SetNeedsManual(sessionID, playerID string, needsManual bool) error

	UpsertCourse(course Course) error
	// CourseDifficulty returns the stroke-index ranking for the session's
	// course, falling back to hcp = hole number with the Approximated flag
	// set when no usable course data exists.
	CourseDifficulty(courseID *string) (strokes.CourseDifficulty, error)

	SaveScores(sessionID, playerID string, scores []HoleScore) error
	GetScores(sessionID string) (map[string][]HoleScore, error)

	SaveScanState(sessionID string, entries []StoredEntry, assignments map[string]AssignmentRecord) error
	GetScanState(sessionID string) ([]StoredEntry, map[string]AssignmentRecord, error)

	Clear()
}
