package commands

import (
	"context"

	"parcels/internal/core/domain/model/parcel"
)

// UpdateParcelCommandHandler revises a parcel and recomputes its price.
// See parcel.Parcel.Revise for which fields are kept once the parcel left PENDING.
type UpdateParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	pricer     parcel.Pricer
	options
}

func NewUpdateParcelCommandHandler(
	uowFactory ParcelUoWFactory, pricer parcel.Pricer, opts ...Option,
) UpdateParcelCommandHandler {
	return UpdateParcelCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		options:    newOptions("update-parcel", opts),
	}
}

// Handle locks the parcel row, applies the changes and saves them.
func (h UpdateParcelCommandHandler) Handle(ctx context.Context, cmd UpdateParcelCommand) error {
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

	if err = p.Revise(cmd.Details(), h.pricer, h.clock()); err != nil {
		h.reportTariffMiss(ctx, err)
		return err
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
