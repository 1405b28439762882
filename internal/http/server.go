package http

import (
	"net/http"

	"github.com/skovlund/birdieledger/internal/config"
	"github.com/skovlund/birdieledger/internal/metrics"
	"github.com/skovlund/birdieledger/internal/notifier"
	"github.com/skovlund/birdieledger/internal/pubsub"
	"github.com/skovlund/birdieledger/internal/roster"
	"github.com/skovlund/birdieledger/internal/scanflow"
	"github.com/skovlund/birdieledger/internal/session"
)

func NewServer(players roster.PlayerStore, sessions session.SessionStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *scanflow.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Players:        players,
		Sessions:       sessions,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/sessions/create", Chain(s.CreateSessionHandler(), paramsMiddleware))
	s.Router.Handle("/sessions/get", Chain(s.GetSessionHandler(), paramsMiddleware))
	s.Router.Handle("/sessions/modes", Chain(s.GameModesHandler(), paramsMiddleware))
	s.Router.Handle("/sessions/game", Chain(s.SetGameTypeHandler(), paramsMiddleware))
	s.Router.Handle("/participants/handicap", Chain(s.UpdateHandicapHandler(), paramsMiddleware))
	s.Router.Handle("/participants/tee", Chain(s.UpdateTeeHandler(), paramsMiddleware))
	s.Router.Handle("/scan/upload", Chain(s.ScanUploadHandler(), paramsMiddleware))
	s.Router.Handle("/scan-completed", Chain(s.ScanCompletedHandler(), paramsMiddleware))
	s.Router.Handle("/reassign", Chain(s.ReassignHandler(), paramsMiddleware))
	s.Router.Handle("/allocations", Chain(s.AllocationsHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/stroke-sheet", Chain(s.StrokeSheetCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
