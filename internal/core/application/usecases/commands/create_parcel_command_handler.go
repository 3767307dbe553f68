package commands

import (
	"context"
	"errors"
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// maxReferenceAttempts bounds the retries when a generated reference is already taken.
const maxReferenceAttempts = 5

// ErrReferenceSpaceExhausted is returned when every generated reference was already taken.
var ErrReferenceSpaceExhausted = errors.New("could not generate a free parcel reference")

// CreateParcelCommandHandler creates parcels in PENDING with a computed price.
//
// When the sender is known to the GeoLookup its current position becomes the
// first GPS snapshot. An unknown sender fails the command only when
// requireKnownSender is set; lookup errors are logged and skipped.
//
// Example:
//
//	handler := NewCreateParcelCommandHandler(uowFactory, engine, refs, geo, false)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type CreateParcelCommandHandler struct {
	uowFactory         ParcelUoWFactory
	pricer             parcel.Pricer
	references         parcel.ReferenceGenerator
	geo                ports.GeoLookup
	requireKnownSender bool
	options
}

// NewCreateParcelCommandHandler creates a handler for parcel creation.
func NewCreateParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	pricer parcel.Pricer,
	references parcel.ReferenceGenerator,
	geo ports.GeoLookup,
	requireKnownSender bool,
	opts ...Option,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory:         uowFactory,
		pricer:             pricer,
		references:         references,
		geo:                geo,
		requireKnownSender: requireKnownSender,
		options:            newOptions("create-parcel", opts),
	}
}

// Handle creates and persists the parcel in one transaction.
func (h CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	details := cmd.Details()
	origin, err := h.senderOrigin(ctx, details.SenderID)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelRepository()
	reference, err := h.freeReference(ctx, repo)
	if err != nil {
		return err
	}

	p, err := parcel.NewParcel(cmd.ParcelID(), reference, details, origin, h.pricer, h.clock())
	if err != nil {
		h.reportTariffMiss(ctx, err)
		return err
	}

	if err = repo.Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateParcelCommandHandler) senderOrigin(ctx context.Context, senderID *kernel.UUID) (*kernel.GeoPoint, error) {
	if senderID == nil || h.geo == nil {
		return nil, nil
	}

	point, found, err := h.geo.SenderLocation(ctx, *senderID)
	switch {
	case err != nil:
		h.logger.WarnContext(ctx, "sender location lookup failed, GPS snapshot skipped",
			"sender_id", senderID.String(), "error", err)
		return nil, nil
	case !found && h.requireKnownSender:
		return nil, errs.NewObjectNotFoundError("sender", senderID.String())
	case !found:
		return nil, nil
	default:
		return &point, nil
	}
}

func (h CreateParcelCommandHandler) freeReference(ctx context.Context, repo ports.ParcelRepository) (parcel.Reference, error) {
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		reference, err := h.references.Next()
		if err != nil {
			return parcel.Reference{}, err
		}

		taken, err := repo.ExistsByReference(ctx, reference)
		if err != nil {
			return parcel.Reference{}, err
		}
		if !taken {
			return reference, nil
		}

		h.logger.WarnContext(ctx, "generated parcel reference already taken",
			"reference", reference.String(), "attempt", attempt)
	}
	return parcel.Reference{}, fmt.Errorf("%w after %d attempts", ErrReferenceSpaceExhausted, maxReferenceAttempts)
}

// reportTariffMiss logs and counts a price that could not be computed.
func (h options) reportTariffMiss(ctx context.Context, err error) {
	var miss *services.TariffNotFoundError
	if !errors.As(err, &miss) {
		return
	}
	h.logger.WarnContext(ctx, "no tariff for parcel",
		"category", miss.Category.String(), "zone", miss.Zone.String(), "weight_kg", miss.WeightKg)
	h.observer.TariffMissed(miss.Category, miss.Zone)
}
