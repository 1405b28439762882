package roster

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/skovlund/birdieledger/internal/strokes"
)

// New creates a new roster store backed by the given database.
func New(db *sql.DB) PlayerStore {
	return &store{db: db}
}

func (s *store) UpsertPlayer(player PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO players (id, name, handicap_index, is_self)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			handicap_index = excluded.handicap_index,
			is_self = excluded.is_self
	`
	if _, err := s.db.Exec(query, player.ID, player.Name, player.HandicapIndex, player.IsSelf); err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", player.ID, err)
	}
	return nil
}

func (s *store) GetPlayer(playerID string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p PlayerInfo
	row := s.db.QueryRow(`SELECT id, name, handicap_index, is_self FROM players WHERE id = ?`, playerID)
	if err := row.Scan(&p.ID, &p.Name, &p.HandicapIndex, &p.IsSelf); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player not found: %s", playerID)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	aliases, err := s.aliases(playerID)
	if err != nil {
		return nil, err
	}
	p.Aliases = aliases
	return &p, nil
}

func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, handicap_index, is_self FROM players ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerInfo
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.HandicapIndex, &p.IsSelf); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}

	for i := range players {
		aliases, err := s.aliases(players[i].ID)
		if err != nil {
			return nil, err
		}
		players[i].Aliases = aliases
	}
	return players, nil
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var one int
	err := s.db.QueryRow(`SELECT 1 FROM players WHERE id = ?`, playerID).Scan(&one)
	return err == nil
}

func (s *store) AddAlias(playerID, alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if alias == "" {
		return nil
	}
	query := `INSERT OR IGNORE INTO player_aliases (player_id, alias, created_at) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(query, playerID, alias, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to add alias %q for player %s: %w", alias, playerID, err)
	}
	log.Debug("Stored alias", "playerID", playerID, "alias", alias)
	return nil
}

func (s *store) UpdateHandicap(playerID string, value float64) error {
	if err := strokes.ValidateHandicap(value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE players SET handicap_index = ? WHERE id = ?`, value, playerID)
	if err != nil {
		return fmt.Errorf("failed to update handicap: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player not found: %s", playerID)
	}
	return nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"player_aliases", "players"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

func (s *store) aliases(playerID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT alias FROM player_aliases WHERE player_id = ? ORDER BY created_at ASC, alias ASC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	defer rows.Close()

	var aliases []string
	for rows.Next() {
		var alias string
		if err := rows.Scan(&alias); err != nil {
			return nil, fmt.Errorf("failed to scan alias row: %w", err)
		}
		aliases = append(aliases, alias)
	}
	return aliases, nil
}
