package session

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/skovlund/birdieledger/internal/format"
	"github.com/skovlund/birdieledger/internal/strokes"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new session store backed by the given database.
func New(db *sql.DB) SessionStore {
	return &store{db: db}
}

func (s *store) CreateSession(params CreateSessionParams) (*Session, error) {
	if err := format.ValidateSelection(params.GameType, len(params.Participants), params.GameMode); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		CourseID:  params.CourseID,
		GameType:  params.GameType,
		GameMode:  params.GameMode,
		BetUnit:   format.DefaultBetUnit(params.GameType),
		Status:    StatusOpen,
		CreatedAt: now,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sessions (id, course_id, game_type, game_mode, bet_unit, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.CourseID, string(sess.GameType), string(sess.GameMode), string(sess.BetUnit), string(sess.Status), now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	for i, p := range params.Participants {
		p.Position = i
		_, err = tx.Exec(`
			INSERT INTO session_participants (session_id, player_id, position, name, handicap_index, course_handicap, tee_name, tee_gender)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sess.ID, p.PlayerID, p.Position, p.Name, p.HandicapIndex, p.CourseHandicap, p.TeeName, p.TeeGender,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add participant %s: %w", p.PlayerID, err)
		}
		sess.Participants = append(sess.Participants, p)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}

	log.Info("Created session", "id", sess.ID, "gameType", sess.GameType, "mode", sess.GameMode, "players", len(sess.Participants))
	return sess, nil
}

func (s *store) GetSession(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSession(sessionID)
}

func (s *store) getSession(sessionID string) (*Session, error) {
	var sess Session
	var createdAt int64
	var gameType, gameMode, betUnit, status string

	row := s.db.QueryRow(`
		SELECT id, course_id, game_type, game_mode, bet_unit, status, created_at
		FROM sessions WHERE id = ?`, sessionID)
	err := row.Scan(&sess.ID, &sess.CourseID, &gameType, &gameMode, &betUnit, &status, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session not found: %s", sessionID)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	sess.GameType = format.GameType(gameType)
	sess.GameMode = format.GameMode(gameMode)
	sess.BetUnit = format.BetUnit(betUnit)
	sess.Status = Status(status)
	sess.CreatedAt = time.Unix(createdAt, 0)

	participants, err := s.participants(sessionID)
	if err != nil {
		return nil, err
	}
	sess.Participants = participants
	return &sess, nil
}

// participants loads the roster snapshot in seating order, with the players'
// current alias lists joined in so reconciliation sees spellings learned in
// earlier rounds.
func (s *store) participants(sessionID string) ([]Participant, error) {
	rows, err := s.db.Query(`
		SELECT player_id, position, name, handicap_index, course_handicap, tee_name, tee_gender, needs_manual
		FROM session_participants
		WHERE session_id = ?
		ORDER BY position ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		var needsManual int
		err := rows.Scan(&p.PlayerID, &p.Position, &p.Name, &p.HandicapIndex, &p.CourseHandicap, &p.TeeName, &p.TeeGender, &needsManual)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		p.NeedsManual = needsManual != 0
		participants = append(participants, p)
	}

	for i := range participants {
		aliasRows, err := s.db.Query(`SELECT alias FROM player_aliases WHERE player_id = ? ORDER BY created_at ASC, alias ASC`, participants[i].PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to query participant aliases: %w", err)
		}
		for aliasRows.Next() {
			var alias string
			if err := aliasRows.Scan(&alias); err != nil {
				aliasRows.Close()
				return nil, fmt.Errorf("failed to scan alias row: %w", err)
			}
			participants[i].Aliases = append(participants[i].Aliases, alias)
		}
		aliasRows.Close()
	}
	return participants, nil
}

func (s *store) SetStatus(sessionID string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE sessions SET status = ? WHERE id = ?`, string(status), sessionID)
	if err != nil {
		return fmt.Errorf("failed to set session status: %w", err)
	}
	return nil
}

func (s *store) SetGameType(sessionID string, gameType format.GameType, mode format.GameMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return err
	}
	if err := format.ValidateSelection(gameType, len(sess.Participants), mode); err != nil {
		return err
	}

	// The previous bet unit may not exist under the new game type; never
	// leave a dangling combination for settlement to trip over.
	betUnit := format.NormalizeBetUnit(gameType, sess.BetUnit)

	_, err = s.db.Exec(`UPDATE sessions SET game_type = ?, game_mode = ?, bet_unit = ? WHERE id = ?`,
		string(gameType), string(mode), string(betUnit), sessionID)
	if err != nil {
		return fmt.Errorf("failed to update game type: %w", err)
	}
	log.Info("Updated session format", "id", sessionID, "gameType", gameType, "mode", mode, "betUnit", betUnit)
	return nil
}

func (s *store) UpdateParticipantHandicap(sessionID, playerID string, value float64) error {
	if err := strokes.ValidateHandicap(value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE session_participants SET course_handicap = ? WHERE session_id = ? AND player_id = ?`,
		value, sessionID, playerID)
	if err != nil {
		return fmt.Errorf("failed to update participant handicap: %w", err)
	}
	return requireRow(res, sessionID, playerID)
}

func (s *store) UpdateParticipantTee(sessionID, playerID, teeName, teeGender string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE session_participants SET tee_name = ?, tee_gender = ? WHERE session_id = ? AND player_id = ?`,
		teeName, teeGender, sessionID, playerID)
	if err != nil {
		return fmt.Errorf("failed to update participant tee: %w", err)
	}
	return requireRow(res, sessionID, playerID)
}

func (s *store) SetNeedsManual(sessionID, playerID string, needsManual bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE session_participants SET needs_manual = ? WHERE session_id = ? AND player_id = ?`,
		boolToInt(needsManual), sessionID, playerID)
	if err != nil {
		return fmt.Errorf("failed to set needs_manual: %w", err)
	}
	return requireRow(res, sessionID, playerID)
}

func (s *store) UpsertCourse(course Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO courses (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`, course.ID, course.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert course: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM course_holes WHERE course_id = ?`, course.ID); err != nil {
		return fmt.Errorf("failed to clear course holes: %w", err)
	}
	for _, h := range course.Holes {
		_, err = tx.Exec(`INSERT INTO course_holes (course_id, hole_number, hcp) VALUES (?, ?, ?)`,
			course.ID, h.Hole, h.Hcp)
		if err != nil {
			return fmt.Errorf("failed to insert hole %d: %w", h.Hole, err)
		}
	}

	return tx.Commit()
}

func (s *store) CourseDifficulty(courseID *string) (strokes.CourseDifficulty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if courseID == nil {
		log.Warn("No course on session, approximating hole difficulty")
		return strokes.ApproximateDifficulty(), nil
	}

	rows, err := s.db.Query(`SELECT hole_number, hcp FROM course_holes WHERE course_id = ? ORDER BY hole_number ASC`, *courseID)
	if err != nil {
		return strokes.CourseDifficulty{}, fmt.Errorf("failed to query course holes: %w", err)
	}
	defer rows.Close()

	var holes []strokes.HoleDifficulty
	for rows.Next() {
		var h strokes.HoleDifficulty
		if err := rows.Scan(&h.Hole, &h.Hcp); err != nil {
			return strokes.CourseDifficulty{}, fmt.Errorf("failed to scan hole row: %w", err)
		}
		holes = append(holes, h)
	}

	if len(holes) != 18 {
		log.Warn("Course has no usable hole data, approximating difficulty", "courseID", *courseID, "holes", len(holes))
		return strokes.ApproximateDifficulty(), nil
	}
	return strokes.CourseDifficulty{Holes: holes}, nil
}

func (s *store) SaveScores(sessionID, playerID string, scores []HoleScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM round_scores WHERE session_id = ? AND player_id = ?`, sessionID, playerID); err != nil {
		return fmt.Errorf("failed to clear previous scores: %w", err)
	}
	for _, sc := range scores {
		_, err = tx.Exec(`INSERT INTO round_scores (session_id, player_id, hole_number, strokes) VALUES (?, ?, ?, ?)`,
			sessionID, playerID, sc.Hole, sc.Strokes)
		if err != nil {
			return fmt.Errorf("failed to insert score for hole %d: %w", sc.Hole, err)
		}
	}
	return tx.Commit()
}

func (s *store) GetScores(sessionID string) (map[string][]HoleScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_id, hole_number, strokes
		FROM round_scores WHERE session_id = ?
		ORDER BY player_id ASC, hole_number ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string][]HoleScore)
	for rows.Next() {
		var playerID string
		var sc HoleScore
		if err := rows.Scan(&playerID, &sc.Hole, &sc.Strokes); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		scores[playerID] = append(scores[playerID], sc)
	}
	return scores, nil
}

func (s *store) SaveScanState(sessionID string, entries []StoredEntry, assignments map[string]AssignmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM scan_entries WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear scan entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM scan_assignments WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear scan assignments: %w", err)
	}

	for _, e := range entries {
		blob, err := msgpack.Marshal(e.Scores)
		if err != nil {
			return fmt.Errorf("failed to marshal scores for entry %d: %w", e.Index, err)
		}
		_, err = tx.Exec(`INSERT INTO scan_entries (session_id, entry_index, name, scores_blob) VALUES (?, ?, ?, ?)`,
			sessionID, e.Index, e.Name, blob)
		if err != nil {
			return fmt.Errorf("failed to insert scan entry %d: %w", e.Index, err)
		}
	}

	for playerID, a := range assignments {
		_, err = tx.Exec(`INSERT INTO scan_assignments (session_id, player_id, entry_index, distance) VALUES (?, ?, ?, ?)`,
			sessionID, playerID, a.EntryIndex, a.Distance)
		if err != nil {
			return fmt.Errorf("failed to insert scan assignment for %s: %w", playerID, err)
		}
	}
	return tx.Commit()
}

func (s *store) GetScanState(sessionID string) ([]StoredEntry, map[string]AssignmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT entry_index, name, scores_blob FROM scan_entries WHERE session_id = ? ORDER BY entry_index ASC`, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query scan entries: %w", err)
	}
	defer rows.Close()

	var entries []StoredEntry
	for rows.Next() {
		var e StoredEntry
		var blob []byte
		if err := rows.Scan(&e.Index, &e.Name, &blob); err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		if blob != nil {
			if err := msgpack.Unmarshal(blob, &e.Scores); err != nil {
				log.Warn("Failed to unmarshal scan entry scores", "error", err, "entry", e.Index)
			}
		}
		entries = append(entries, e)
	}

	assignRows, err := s.db.Query(`SELECT player_id, entry_index, distance FROM scan_assignments WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query scan assignments: %w", err)
	}
	defer assignRows.Close()

	assignments := make(map[string]AssignmentRecord)
	for assignRows.Next() {
		var playerID string
		var a AssignmentRecord
		if err := assignRows.Scan(&playerID, &a.EntryIndex, &a.Distance); err != nil {
			return nil, nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments[playerID] = a
	}
	return entries, assignments, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"scan_assignments", "scan_entries", "round_scores", "session_participants", "sessions", "course_holes", "courses"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

func requireRow(res sql.Result, sessionID, playerID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("participant %s not found in session %s", playerID, sessionID)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
