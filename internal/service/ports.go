package service

import (
	"context"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/events"
)

// Relay pushes a payload to whoever is connected to a room right now.
// Delivery is a hint, not a guarantee; the store stays the source of truth.
type Relay interface {
	Broadcast(room string, payload any)
}

// EventPublisher hands persisted messages to the event bus. Failures are
// logged and swallowed; a send never fails because the bus is down.
type EventPublisher interface {
	PublishMessageSent(ctx context.Context, ev events.MessageSent) error
}

// NopRelay and NopPublisher keep wiring simple when realtime or the bus is
// disabled in config.
type NopRelay struct{}

func (NopRelay) Broadcast(string, any) {}

type NopPublisher struct{}

func (NopPublisher) PublishMessageSent(context.Context, events.MessageSent) error { return nil }
