package notifier

import (
	"sync"

	"github.com/skovlund/birdieledger/internal/reconcile"
	"github.com/skovlund/birdieledger/internal/session"
	"github.com/skovlund/birdieledger/internal/strokes"
)

var _ Notifier = (*MockNotifier)(nil)

// MockNotifier is a mock implementation of the Notifier interface for
// testing. It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendScanSummaryFunc           func(sess *session.Session, result reconcile.Result, entries []session.StoredEntry, dryRun bool) error
	SendStrokeSheetFunc           func(sess *session.Session, allocations []strokes.Allocation, dryRun bool) error
	FormatStrokeSheetResponseFunc func(sess *session.Session, allocations []strokes.Allocation) (any, error)

	// Call records
	SendScanSummaryCalls []SendScanSummaryCall
	SendStrokeSheetCalls []SendStrokeSheetCall
}

// SendScanSummaryCall holds the arguments for a call to SendScanSummary.
type SendScanSummaryCall struct {
	Session *session.Session
	Result  reconcile.Result
	Entries []session.StoredEntry
	DryRun  bool
}

// SendStrokeSheetCall holds the arguments for a call to SendStrokeSheet.
type SendStrokeSheetCall struct {
	Session     *session.Session
	Allocations []strokes.Allocation
	DryRun      bool
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

// Reset clears all call records.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScanSummaryCalls = nil
	m.SendStrokeSheetCalls = nil
}

func (m *MockNotifier) SendScanSummary(sess *session.Session, result reconcile.Result, entries []session.StoredEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScanSummaryCalls = append(m.SendScanSummaryCalls, SendScanSummaryCall{sess, result, entries, dryRun})
	if m.SendScanSummaryFunc != nil {
		return m.SendScanSummaryFunc(sess, result, entries, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendStrokeSheet(sess *session.Session, allocations []strokes.Allocation, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStrokeSheetCalls = append(m.SendStrokeSheetCalls, SendStrokeSheetCall{sess, allocations, dryRun})
	if m.SendStrokeSheetFunc != nil {
		return m.SendStrokeSheetFunc(sess, allocations, dryRun)
	}
	return nil
}

func (m *MockNotifier) FormatStrokeSheetResponse(sess *session.Session, allocations []strokes.Allocation) (any, error) {
	if m.FormatStrokeSheetResponseFunc != nil {
		return m.FormatStrokeSheetResponseFunc(sess, allocations)
	}
	return map[string]any{"session": sess.ID, "allocations": allocations}, nil
}
