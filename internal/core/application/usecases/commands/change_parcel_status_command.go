package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var ErrChangeParcelStatusCommandIsNotConstructed = errors.New(
	"ChangeParcelStatusCommand must be created via NewChangeParcelStatusCommand constructor",
)

// ChangeParcelStatusCommand moves a parcel to the status named by the caller.
// The name is parsed here, so an unknown name fails before anything is loaded.
type ChangeParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	status   parcel.Status

	guard guard.ConstructorGuard
}

// NewChangeParcelStatusCommand returns *errs.StatusIsInvalidError for an unknown status name.
func NewChangeParcelStatusCommand(parcelID kernel.UUID, statusName string) (ChangeParcelStatusCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return ChangeParcelStatusCommand{}, err
	}

	status, err := parcel.ParseStatus(statusName)
	if err != nil {
		return ChangeParcelStatusCommand{}, err
	}

	return ChangeParcelStatusCommand{
		parcelID: parcelID,
		status:   status,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeParcelStatusCommandIsNotConstructed)
}

func (c ChangeParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c ChangeParcelStatusCommand) Status() parcel.Status {
	return c.status
}
