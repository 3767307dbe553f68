package ports

import "context"

// EventPublisher delivers outbox messages to the message broker.
// Publish either delivers every message or returns an error; callers retry the batch.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
