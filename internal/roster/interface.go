package roster

// PlayerStore defines the interface for interacting with the player roster.
type PlayerStore interface {
	UpsertPlayer(player PlayerInfo) error
	GetPlayer(playerID string) (*PlayerInfo, error)
	GetAllPlayers() ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool
	// AddAlias records a new spelling for a player. Duplicates are ignored.
	// Callers treat this as best-effort: a failure is logged, never fatal.
	AddAlias(playerID, alias string) error
	// UpdateHandicap rejects out-of-range values; the stored value is only
	// replaced when the new one validates.
	UpdateHandicap(playerID string, value float64) error
	Clear()
}
