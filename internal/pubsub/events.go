// Package pubsub provides a generic publish/subscribe event system.
//
// It carries completed remote work and log lines back into the Bubble Tea
// update loop so that all state mutation stays on the update goroutine.
package pubsub

import (
	"context"
	"time"
)

// EventType labels what a published event represents.
type EventType string

const (
	// CompletedEvent marks the completion of an asynchronous operation.
	CompletedEvent EventType = "completed"
	// LogEvent marks a structured log line.
	LogEvent EventType = "log"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
