package roster

import "sync"

// MockStore is a mock implementation of the PlayerStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayerFunc   func(player PlayerInfo) error
	GetPlayerFunc      func(playerID string) (*PlayerInfo, error)
	GetAllPlayersFunc  func() ([]PlayerInfo, error)
	IsKnownPlayerFunc  func(playerID string) bool
	AddAliasFunc       func(playerID, alias string) error
	UpdateHandicapFunc func(playerID string, value float64) error

	// Call records
	UpsertPlayerCalls []PlayerInfo
	AddAliasCalls     []struct {
		PlayerID string
		Alias    string
	}
	UpdateHandicapCalls []struct {
		PlayerID string
		Value    float64
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
	m.UpsertPlayerCalls = nil
	m.AddAliasCalls = nil
	m.UpdateHandicapCalls = nil
}

func (m *MockStore) UpsertPlayer(player PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayerCalls = append(m.UpsertPlayerCalls, player)
	if m.UpsertPlayerFunc != nil {
		return m.UpsertPlayerFunc(player)
	}
	return nil
}

func (m *MockStore) GetPlayer(playerID string) (*PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return &PlayerInfo{ID: playerID}, nil
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return true
}

func (m *MockStore) AddAlias(playerID, alias string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddAliasCalls = append(m.AddAliasCalls, struct {
		PlayerID string
		Alias    string
	}{playerID, alias})
	if m.AddAliasFunc != nil {
		return m.AddAliasFunc(playerID, alias)
	}
	return nil
}

func (m *MockStore) UpdateHandicap(playerID string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateHandicapCalls = append(m.UpdateHandicapCalls, struct {
		PlayerID string
		Value    float64
	}{playerID, value})
	if m.UpdateHandicapFunc != nil {
		return m.UpdateHandicapFunc(playerID, value)
	}
	return nil
}

func (m *MockStore) Clear() {}
