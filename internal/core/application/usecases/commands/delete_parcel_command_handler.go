package commands

import (
	"context"
)

// DeleteParcelCommandHandler deletes a parcel and records a deletion event.
type DeleteParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	options
}

func NewDeleteParcelCommandHandler(uowFactory ParcelUoWFactory, opts ...Option) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{
		uowFactory: uowFactory,
		options:    newOptions("delete-parcel", opts),
	}
}

// Handle returns *errs.ObjectNotFoundError when the parcel does not exist.
func (h DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
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

	p.MarkDeleted(h.clock())
	if err = repo.Delete(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
