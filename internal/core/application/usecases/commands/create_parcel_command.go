package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand registers a new parcel. The caller chooses the parcel id
// so it can read the created parcel back afterwards.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	cmd, err := NewCreateParcelCommand(parcelID, parcel.Details{
//	    Category: parcel.CategoryStandard,
//	    Zone:     parcel.ZoneUrban,
//	    WeightKg: 7,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create parcel: %w", err)
//	}
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	details  parcel.Details

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand validates the id, the tariff inputs and the weight.
func NewCreateParcelCommand(parcelID kernel.UUID, details parcel.Details) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		details.Category.Validate(),
		details.Zone.Validate(),
		validateWeight(details.WeightKg),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	cmd.details = details
	return cmd, nil
}

func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c CreateParcelCommand) Details() parcel.Details {
	return c.details
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	c.parcelID = parcelID
	return nil
}

func validateWeight(weightKg float64) error {
	if weightKg < 0 || weightKg != weightKg {
		return errs.NewValueIsOutOfRangeError("weight", weightKg, 0, "unbounded")
	}
	return nil
}
