package commands

import (
	"errors"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrPublishOutboxCommandIsNotConstructed = errors.New(
	"PublishOutboxCommand must be created via NewPublishOutboxCommand constructor",
)

// PublishOutboxCommand relays up to BatchSize pending domain events to the broker.
type PublishOutboxCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishOutboxCommand(batchSize int) (PublishOutboxCommand, error) {
	if batchSize <= 0 {
		return PublishOutboxCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return PublishOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c PublishOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxCommandIsNotConstructed)
}

func (c PublishOutboxCommand) BatchSize() int {
	return c.batchSize
}
