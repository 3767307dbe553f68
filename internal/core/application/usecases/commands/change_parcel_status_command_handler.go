package commands

import (
	"context"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

// StatusApplier runs a status change with its side effects.
// It is satisfied by *services.ParcelLifecycle.
type StatusApplier interface {
	Apply(ctx context.Context, p *parcel.Parcel, target parcel.Status, workload services.CourierWorkload) error
}

// ChangeParcelStatusCommandHandler applies lifecycle transitions.
//
// The parcel row is locked for the whole transition. Courier exclusivity is
// checked by the lifecycle against the courier's active parcels and enforced
// again by storage when the change is saved.
type ChangeParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
	lifecycle  StatusApplier
	options
}

func NewChangeParcelStatusCommandHandler(
	uowFactory ParcelUoWFactory, lifecycle StatusApplier, opts ...Option,
) ChangeParcelStatusCommandHandler {
	return ChangeParcelStatusCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		options:    newOptions("change-parcel-status", opts),
	}
}

func (h ChangeParcelStatusCommandHandler) Handle(ctx context.Context, cmd ChangeParcelStatusCommand) error {
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

	from := p.Status()
	err = h.apply(ctx, uow, repo, p, cmd.Status())
	h.observer.StatusChanged(from, cmd.Status(), err)
	if err != nil {
		h.logger.InfoContext(ctx, "parcel status change rejected",
			"parcel", p.Reference().String(), "from", from.String(), "to", cmd.Status().String(), "error", err)
		return err
	}

	return nil
}

func (h ChangeParcelStatusCommandHandler) apply(
	ctx context.Context, uow TxManager, repo ports.ParcelRepository, p *parcel.Parcel, target parcel.Status,
) error {
	if err := h.lifecycle.Apply(ctx, p, target, repo); err != nil {
		return err
	}

	if err := repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
