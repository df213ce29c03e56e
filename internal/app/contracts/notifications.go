package contracts

import "context"

// EventPublisher emits domain events to the message broker. Publishing is
// best-effort: callers log failures and continue.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
