package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	EventType   string
	AggregateID kernel.UUID
	// Key partitions the message stream; it is the parcel reference.
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

// OutboxRepository reads and acknowledges pending outbox messages.
// Messages are written by the unit of work on commit.
type OutboxRepository interface {
	// GetUnpublished returns up to limit pending messages, oldest first, and locks
	// them so concurrent relays skip rather than duplicate them.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished flags the messages as published at the given time.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}
