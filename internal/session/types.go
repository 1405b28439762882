package session

import (
	"database/sql"
	"sync"
	"time"

	"github.com/skovlund/birdieledger/internal/format"
	"github.com/skovlund/birdieledger/internal/strokes"
)

// store handles all database operations for sessions.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Status tracks the lifecycle of a session.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusScanned   Status = "SCANNED"
	StatusSettled   Status = "SETTLED"
	StatusCancelled Status = "CANCELLED"
)

// Session is one configured round: course, roster snapshot, game type and
// bet unit. The format combination is validated at creation and on every
// game-type change, so settlement can trust what it reads here.
type Session struct {
	ID           string          `json:"id"`
	CourseID     *string         `json:"course_id,omitempty"`
	GameType     format.GameType `json:"game_type"`
	GameMode     format.GameMode `json:"game_mode"`
	BetUnit      format.BetUnit  `json:"bet_unit"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	Participants []Participant   `json:"participants"`
}

// Participant is the session-local snapshot of a player. Tee and handicap
// edits before play mutate this snapshot, not the roster record.
type Participant struct {
	PlayerID       string   `json:"player_id"`
	Position       int      `json:"position"`
	Name           string   `json:"name"`
	Aliases        []string `json:"aliases,omitempty"`
	HandicapIndex  *float64 `json:"handicap_index,omitempty"`
	CourseHandicap *float64 `json:"course_handicap,omitempty"`
	TeeName        *string  `json:"tee_name,omitempty"`
	TeeGender      *string  `json:"tee_gender,omitempty"`
	// NeedsManual marks a participant the last scan could not supply scores
	// for; they are never silently defaulted to zero.
	NeedsManual bool `json:"needs_manual"`
}

// RoundHandicap resolves the handicap used for stroke allocation: the course
// handicap when set, otherwise the handicap index, otherwise zero.
func (p Participant) RoundHandicap() float64 {
	if p.CourseHandicap != nil {
		return *p.CourseHandicap
	}
	if p.HandicapIndex != nil {
		return *p.HandicapIndex
	}
	return 0
}

// Course is an 18-hole course with its stroke-index ranking.
type Course struct {
	ID    string                   `json:"id"`
	Name  string                   `json:"name"`
	Holes []strokes.HoleDifficulty `json:"holes"`
}

// HoleScore is one persisted gross score.
type HoleScore struct {
	Hole    int `json:"hole"`
	Strokes int `json:"strokes"`
}

// StoredEntry is a scanned scorecard row retained after reconciliation so a
// user can still re-cycle assignments manually.
type StoredEntry struct {
	Index  int         `json:"index"`
	Name   string      `json:"name"`
	Scores []HoleScore `json:"scores"`
}

// AssignmentRecord is the persisted participant-to-entry binding.
type AssignmentRecord struct {
	EntryIndex int `json:"entry_index"`
	Distance   int `json:"distance"`
}

// CreateSessionParams is the input to CreateSession.
type CreateSessionParams struct {
	CourseID     *string
	GameType     format.GameType
	GameMode     format.GameMode
	Participants []Participant
}
