package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var ErrUpdateParcelCommandIsNotConstructed = errors.New(
	"UpdateParcelCommand must be created via NewUpdateParcelCommand constructor",
)

// UpdateParcelCommand re-applies the caller supplied attributes of a parcel.
// An unknown category or zone means "keep the stored value".
type UpdateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	details  parcel.Details

	guard guard.ConstructorGuard
}

func NewUpdateParcelCommand(parcelID kernel.UUID, details parcel.Details) (UpdateParcelCommand, error) {
	cmd := UpdateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	var errList []error
	errList = append(errList, parcelID.Validate(), validateWeight(details.WeightKg))
	if details.Category != parcel.CategoryUnknown {
		errList = append(errList, details.Category.Validate())
	}
	if details.Zone != parcel.ZoneUnknown {
		errList = append(errList, details.Zone.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateParcelCommand{}, err
	}

	cmd.parcelID = parcelID
	cmd.details = details
	return cmd, nil
}

func (c UpdateParcelCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelCommandIsNotConstructed)
}

func (c UpdateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c UpdateParcelCommand) Details() parcel.Details {
	return c.details
}
