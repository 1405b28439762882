package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	ScansProcessed         prometheus.Counter
	ReconciliationDuration prometheus.Histogram
	SessionsCreated        prometheus.Counter
	FormatRejections       prometheus.Counter
	AliasWriteFailures     prometheus.Counter
	SlackNotifSent         prometheus.Counter
	SlackNotifFailed       prometheus.Counter
	StartupTimeSeconds     prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ScansProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_scans_processed_total",
			Help: "The total number of scorecard scans reconciled.",
		}),
		ReconciliationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_reconciliation_duration_seconds",
			Help:    "The duration of a full scan reconciliation pass.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_sessions_created_total",
			Help: "The total number of sessions created.",
		}),
		FormatRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_format_rejections_total",
			Help: "The total number of session creations blocked by an illegal game format.",
		}),
		AliasWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_alias_write_failures_total",
			Help: "The total number of best-effort alias writes that failed.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ScansProcessed,
		s.ReconciliationDuration,
		s.SessionsCreated,
		s.FormatRejections,
		s.AliasWriteFailures,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncScansProcessed() {
	s.ScansProcessed.Inc()
}

func (s *Service) ObserveReconciliationDuration(duration float64) {
	s.ReconciliationDuration.Observe(duration)
}

func (s *Service) IncSessionsCreated() {
	s.SessionsCreated.Inc()
}

func (s *Service) IncFormatRejections() {
	s.FormatRejections.Inc()
}

func (s *Service) IncAliasWriteFailures() {
	s.AliasWriteFailures.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
