package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/skovlund/birdieledger/internal/metrics"
	"github.com/skovlund/birdieledger/internal/notifier"
	"github.com/skovlund/birdieledger/internal/reconcile"
	"github.com/skovlund/birdieledger/internal/session"
	"github.com/skovlund/birdieledger/internal/strokes"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client
// that we use. This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack client
// instance. Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface.
func (s *Notifier) SendScanSummary(sess *session.Session, result reconcile.Result, entries []session.StoredEntry, dryRun bool) error {
	msg := s.formatScanSummary(sess, result, entries)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStrokeSheet(sess *session.Session, allocations []strokes.Allocation, dryRun bool) error {
	msg := s.formatStrokeSheet(sess, allocations)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStrokeSheetResponse formats a stroke sheet for a slash command response.
func (s *Notifier) FormatStrokeSheetResponse(sess *session.Session, allocations []strokes.Allocation) (any, error) {
	return s.formatStrokeSheet(sess, allocations), nil
}
