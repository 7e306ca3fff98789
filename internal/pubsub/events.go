// Package pubsub fans log entries and stylesheet change notifications out to
// subscribers, and bridges subscriptions into the Bubble Tea loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to a payload.
type EventType string

const (
	// LogEntry carries one formatted log line.
	LogEntry EventType = "log-entry"
	// FileWritten means the file was modified in place.
	FileWritten EventType = "file-written"
	// FileReplaced means a new file took the old one's name, as editors do
	// when they save through a temporary file.
	FileReplaced EventType = "file-replaced"
	// FileRemoved means the file was deleted or renamed away.
	FileRemoved EventType = "file-removed"
)

// Changed reports whether t means new file content is available.
func (t EventType) Changed() bool {
	return t == FileWritten || t == FileReplaced
}

// Event is one published payload.
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
