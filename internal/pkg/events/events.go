package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types published on the domain topic
const (
	TypeUserRegistered           = "user.registered"
	TypeAlumniApproved           = "alumni.approved"
	TypeApplicationStatusChanged = "application.status_changed"
	TypeMentorshipStatusChanged  = "mentorship.status_changed"
	TypeMessageSent              = "message.sent"
)

// Event is a domain fact emitted after a successful mutation
type Event struct {
	Type       string
	Key        string
	Payload    any
	OccurredAt time.Time
}

// New builds an event stamped with the current time
func New(eventType, key string, payload any) Event {
	return Event{Type: eventType, Key: key, Payload: payload, OccurredAt: time.Now().UTC()}
}

// Publisher emits domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Encode renders the wire form of e
func Encode(e Event) ([]byte, error) {
	return json.Marshal(envelope{Type: e.Type, OccurredAt: e.OccurredAt, Payload: e.Payload})
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

// Publish does nothing
func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// Close does nothing
func (NoopPublisher) Close() error { return nil }
