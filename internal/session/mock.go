package session

import (
	"sync"

	"github.com/skovlund/birdieledger/internal/format"
	"github.com/skovlund/birdieledger/internal/strokes"
)

// MockStore is a mock implementation of the SessionStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateSessionFunc             func(params CreateSessionParams) (*Session, error)
	GetSessionFunc                func(sessionID string) (*Session, error)
	SetStatusFunc                 func(sessionID string, status Status) error
	SetGameTypeFunc               func(sessionID string, gameType format.GameType, mode format.GameMode) error
	UpdateParticipantHandicapFunc func(sessionID, playerID string, value float64) error
	UpdateParticipantTeeFunc      func(sessionID, playerID, teeName, teeGender string) error
	SetNeedsManualFunc            func(sessionID, playerID string, needsManual bool) error
	UpsertCourseFunc              func(course Course) error
	CourseDifficultyFunc          func(courseID *string) (strokes.CourseDifficulty, error)
	SaveScoresFunc                func(sessionID, playerID string, scores []HoleScore) error
	GetScoresFunc                 func(sessionID string) (map[string][]HoleScore, error)
	SaveScanStateFunc             func(sessionID string, entries []StoredEntry, assignments map[string]AssignmentRecord) error
	GetScanStateFunc              func(sessionID string) ([]StoredEntry, map[string]AssignmentRecord, error)

	// Call records
	SaveScoresCalls []struct {
		SessionID string
		PlayerID  string
		Scores    []HoleScore
	}
	SetNeedsManualCalls []struct {
		SessionID   string
		PlayerID    string
		NeedsManual bool
	}
	SetStatusCalls []struct {
		SessionID string
		Status    Status
	}
	SaveScanStateCalls []struct {
		SessionID   string
		Entries     []StoredEntry
		Assignments map[string]AssignmentRecord
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveScoresCalls = nil
	m.SetNeedsManualCalls = nil
	m.SetStatusCalls = nil
	m.SaveScanStateCalls = nil
}

func (m *MockStore) CreateSession(params CreateSessionParams) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(params)
	}
	return &Session{ID: "mock-session", GameType: params.GameType, GameMode: params.GameMode, Participants: params.Participants}, nil
}

func (m *MockStore) GetSession(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(sessionID)
	}
	return &Session{ID: sessionID}, nil
}

func (m *MockStore) SetStatus(sessionID string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetStatusCalls = append(m.SetStatusCalls, struct {
		SessionID string
		Status    Status
	}{sessionID, status})
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(sessionID, status)
	}
	return nil
}

func (m *MockStore) SetGameType(sessionID string, gameType format.GameType, mode format.GameMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetGameTypeFunc != nil {
		return m.SetGameTypeFunc(sessionID, gameType, mode)
	}
	return nil
}

func (m *MockStore) UpdateParticipantHandicap(sessionID, playerID string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateParticipantHandicapFunc != nil {
		return m.UpdateParticipantHandicapFunc(sessionID, playerID, value)
	}
	return nil
}

func (m *MockStore) UpdateParticipantTee(sessionID, playerID, teeName, teeGender string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateParticipantTeeFunc != nil {
		return m.UpdateParticipantTeeFunc(sessionID, playerID, teeName, teeGender)
	}
	return nil
}

func (m *MockStore) SetNeedsManual(sessionID, playerID string, needsManual bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetNeedsManualCalls = append(m.SetNeedsManualCalls, struct {
		SessionID   string
		PlayerID    string
		NeedsManual bool
	}{sessionID, playerID, needsManual})
	if m.SetNeedsManualFunc != nil {
		return m.SetNeedsManualFunc(sessionID, playerID, needsManual)
	}
	return nil
}

func (m *MockStore) UpsertCourse(course Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertCourseFunc != nil {
		return m.UpsertCourseFunc(course)
	}
	return nil
}

func (m *MockStore) CourseDifficulty(courseID *string) (strokes.CourseDifficulty, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CourseDifficultyFunc != nil {
		return m.CourseDifficultyFunc(courseID)
	}
	return strokes.ApproximateDifficulty(), nil
}

func (m *MockStore) SaveScores(sessionID, playerID string, scores []HoleScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveScoresCalls = append(m.SaveScoresCalls, struct {
		SessionID string
		PlayerID  string
		Scores    []HoleScore
	}{sessionID, playerID, scores})
	if m.SaveScoresFunc != nil {
		return m.SaveScoresFunc(sessionID, playerID, scores)
	}
	return nil
}

func (m *MockStore) GetScores(sessionID string) (map[string][]HoleScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetScoresFunc != nil {
		return m.GetScoresFunc(sessionID)
	}
	return map[string][]HoleScore{}, nil
}

func (m *MockStore) SaveScanState(sessionID string, entries []StoredEntry, assignments map[string]AssignmentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveScanStateCalls = append(m.SaveScanStateCalls, struct {
		SessionID   string
		Entries     []StoredEntry
		Assignments map[string]AssignmentRecord
	}{sessionID, entries, assignments})
	if m.SaveScanStateFunc != nil {
		return m.SaveScanStateFunc(sessionID, entries, assignments)
	}
	return nil
}

func (m *MockStore) GetScanState(sessionID string) ([]StoredEntry, map[string]AssignmentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetScanStateFunc != nil {
		return m.GetScanStateFunc(sessionID)
	}
	return nil, map[string]AssignmentRecord{}, nil
}

func (m *MockStore) Clear() {}
