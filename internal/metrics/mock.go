package metrics

import "sync"

var _ Metrics = (*MockMetrics)(nil)

// MockMetrics is a counting mock of the Metrics interface for testing.
type MockMetrics struct {
	mu sync.Mutex

	ScansProcessedCount     int
	ReconciliationDurations []float64
	SessionsCreatedCount    int
	FormatRejectionsCount   int
	AliasWriteFailuresCount int
	SlackNotifSentCount     int
	SlackNotifFailedCount   int
	StartupTimes            []float64
}

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncScansProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScansProcessedCount++
}

func (m *MockMetrics) ObserveReconciliationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReconciliationDurations = append(m.ReconciliationDurations, duration)
}

func (m *MockMetrics) IncSessionsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionsCreatedCount++
}

func (m *MockMetrics) IncFormatRejections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatRejectionsCount++
}

func (m *MockMetrics) IncAliasWriteFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AliasWriteFailuresCount++
}

func (m *MockMetrics) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifSentCount++
}

func (m *MockMetrics) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifFailedCount++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, duration)
}
