package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/guard"
)

var ErrRegisterPartyLocationCommandIsNotConstructed = errors.New(
	"RegisterPartyLocationCommand must be created via NewRegisterPartyLocationCommand constructor",
)

// RegisterPartyLocationCommand records where a sender or courier currently is.
type RegisterPartyLocationCommand struct { //nolint:recvcheck //using for validation
	role    ports.PartyRole
	partyID kernel.UUID
	point   kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewRegisterPartyLocationCommand(
	role ports.PartyRole, partyID kernel.UUID, point kernel.GeoPoint,
) (RegisterPartyLocationCommand, error) {
	_, roleErr := ports.ParsePartyRole(string(role))
	if err := errors.Join(roleErr, partyID.Validate(), point.Validate()); err != nil {
		return RegisterPartyLocationCommand{}, err
	}

	return RegisterPartyLocationCommand{
		role:    role,
		partyID: partyID,
		point:   point,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterPartyLocationCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartyLocationCommandIsNotConstructed)
}

func (c RegisterPartyLocationCommand) Role() ports.PartyRole {
	return c.role
}

func (c RegisterPartyLocationCommand) PartyID() kernel.UUID {
	return c.partyID
}

func (c RegisterPartyLocationCommand) Point() kernel.GeoPoint {
	return c.point
}
