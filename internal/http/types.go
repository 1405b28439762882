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

type Server struct {
	Players        roster.PlayerStore
	Sessions       session.SessionStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *scanflow.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
