package commands

import (
	"context"
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"
)

// PublishOutboxCommandHandler relays pending outbox messages to the broker.
//
// Messages are locked while being published and only marked published once
// the broker accepted the whole batch, so a failure leads to a retry on the
// next run rather than a lost event. Consumers must tolerate duplicates.
type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	options
}

func NewPublishOutboxCommandHandler(
	uowFactory OutboxUoWFactory, publisher ports.EventPublisher, opts ...Option,
) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		options:    newOptions("publish-outbox", opts),
	}
}

func (h PublishOutboxCommandHandler) Handle(ctx context.Context, cmd PublishOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return fmt.Errorf("publish %d outbox messages: %w", len(messages), err)
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err = outbox.MarkPublished(ctx, ids, h.clock()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.observer.OutboxPublished(len(messages))
	h.logger.DebugContext(ctx, "outbox messages published", "count", len(messages))
	return nil
}
