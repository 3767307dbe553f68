package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand changes the payment fields present in update.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	update   parcel.PaymentUpdate

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand requires at least one payment field.
func NewRecordPaymentCommand(parcelID kernel.UUID, update parcel.PaymentUpdate) (RecordPaymentCommand, error) {
	var errList []error
	errList = append(errList, parcelID.Validate())
	if update.Method == nil && update.Status == nil && update.Info == nil {
		errList = append(errList, errs.NewValueIsRequiredError("payment method, status or info"))
	}
	if update.Method != nil {
		errList = append(errList, update.Method.Validate())
	}
	if update.Status != nil {
		errList = append(errList, update.Status.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return RecordPaymentCommand{}, err
	}

	return RecordPaymentCommand{
		parcelID: parcelID,
		update:   update,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c RecordPaymentCommand) Update() parcel.PaymentUpdate {
	return c.update
}
