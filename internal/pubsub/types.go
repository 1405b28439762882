package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventScanCompleted carries a scan.Result from the OCR service.
	EventScanCompleted EventType = "scan-completed"
	// EventAllocationReady announces that a session's stroke sheet is final.
	EventAllocationReady EventType = "allocation-ready"
)
