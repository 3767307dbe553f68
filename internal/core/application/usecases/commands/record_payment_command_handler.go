package commands

import (
	"context"

	"parcels/internal/core/domain/model/parcel"
)

// RecordPaymentCommandHandler stores payment details without repricing.
// A delivered parcel whose payment leaves PAID is accepted and logged as a warning.
type RecordPaymentCommandHandler struct {
	uowFactory ParcelUoWFactory
	options
}

func NewRecordPaymentCommandHandler(uowFactory ParcelUoWFactory, opts ...Option) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		options:    newOptions("record-payment", opts),
	}
}

func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
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

	repo := uow.ParcelRepository()
	p, err := repo.GetForUpdate(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = p.RecordPayment(cmd.Update(), h.clock()); err != nil {
		return err
	}

	for _, event := range p.DomainEvents() {
		if event.Type == parcel.EventPaymentRecorded && event.PaymentReverted {
			h.logger.WarnContext(ctx, "payment of a delivered parcel moved away from PAID",
				"parcel", p.Reference().String(), "payment_status", p.PaymentStatus().String())
		}
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
