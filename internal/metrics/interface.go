package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation
// (e.g., Prometheus).
type Metrics interface {
	IncScansProcessed()
	ObserveReconciliationDuration(duration float64)
	IncSessionsCreated()
	IncFormatRejections()
	IncAliasWriteFailures()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
