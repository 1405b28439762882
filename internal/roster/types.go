package roster

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the player roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerInfo is a known golfer. Aliases accumulate over time as scorecard
// reconciliation discovers new spellings; they are never removed
// automatically.
type PlayerInfo struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	HandicapIndex *float64 `json:"handicap_index"`
	IsSelf        bool     `json:"is_self"`
	Aliases       []string `json:"aliases"`
}
