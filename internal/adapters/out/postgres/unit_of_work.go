// Package postgres provides the GORM implementation of the Unit of Work.
//
// Repositories obtained from a unit of work share its transaction. Every
// aggregate they save is tracked, and on Commit the domain events raised by
// those aggregates are written to the outbox in the same transaction, so an
// event is stored if and only if the change that raised it is.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ParcelRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// A unit of work is not safe for concurrent use; create one per operation.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"parcels/internal/adapters/out/postgres/outboxrepo"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate saved during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is an aggregate that raises parcel domain events.
type eventSource interface {
	DomainEvents() []parcel.Event
	ClearDomainEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances on one GORM connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the outbox writes
// of the aggregates changed inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin again while a transaction is open does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes pending domain events to the outbox and commits.
// The events are cleared from their aggregates only when the commit succeeds.
// If the outbox write fails the transaction stays open for Rollback.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.flushDomainEvents(ctx); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err == nil {
		uow.clearDomainEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback discards the transaction and everything tracked in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// ParcelRepository returns a parcel repository bound to the open transaction,
// or to the connection pool when none is open.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate saved by a repository. An aggregate
// tracked twice is only flushed once.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) && tracked.Aggregate == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) flushDomainEvents(ctx context.Context) error {
	var messages []ports.OutboxMessage
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		for _, event := range source.DomainEvents() {
			m, err := outboxMessage(event)
			if err != nil {
				return err
			}
			messages = append(messages, m)
		}
	}

	return outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...)
}

func (uow *GormUnitOfWork) clearDomainEvents() {
	for _, tracked := range uow.trackedAggregates {
		if source, ok := tracked.Aggregate.(eventSource); ok {
			source.ClearDomainEvents()
		}
	}
}

func outboxMessage(event parcel.Event) (ports.OutboxMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return ports.OutboxMessage{}, fmt.Errorf("encode %s event of parcel %s: %w", event.Type, event.Reference, err)
	}
	return ports.OutboxMessage{
		ID:          event.ID,
		EventType:   string(event.Type),
		AggregateID: event.ParcelID,
		Key:         event.Reference,
		Payload:     payload,
		OccurredAt:  event.OccurredAt,
	}, nil
}
