package scanflow

import (
	"github.com/skovlund/birdieledger/internal/metrics"
	"github.com/skovlund/birdieledger/internal/pubsub"
)

// Processor handles the business logic of turning a scanned scorecard into
// saved scores, alias updates and notifications.
type Processor struct {
	sessions SessionStore
	players  PlayerStore
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}
