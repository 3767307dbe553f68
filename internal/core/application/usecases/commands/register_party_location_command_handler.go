package commands

import (
	"context"

	"parcels/internal/core/ports"
)

// RegisterPartyLocationCommandHandler writes party positions to the location registry.
type RegisterPartyLocationCommandHandler struct {
	registry ports.LocationRegistry
	options
}

func NewRegisterPartyLocationCommandHandler(
	registry ports.LocationRegistry, opts ...Option,
) RegisterPartyLocationCommandHandler {
	return RegisterPartyLocationCommandHandler{
		registry: registry,
		options:  newOptions("register-party-location", opts),
	}
}

func (h RegisterPartyLocationCommandHandler) Handle(ctx context.Context, cmd RegisterPartyLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.registry.SetLocation(ctx, cmd.Role(), cmd.PartyID(), cmd.Point(), h.clock())
}
