package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary.
//
// Domain events raised by the aggregates its repositories saved are written to
// the outbox in the same transaction when Commit runs.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// ParcelRepository returns a repository bound to the current transaction.
	ParcelRepository() ParcelRepository

	// OutboxRepository returns an outbox repository bound to the current transaction.
	OutboxRepository() OutboxRepository
}
