package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

// Locator resolves the current position of a party. found is false when the
// party has no known position.
type Locator interface {
	SenderLocation(ctx context.Context, senderID kernel.UUID) (point kernel.GeoPoint, found bool, err error)
	CourierLocation(ctx context.Context, courierID kernel.UUID) (point kernel.GeoPoint, found bool, err error)
}

// CourierWorkload lists the parcels a courier currently holds in an active status.
type CourierWorkload interface {
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*parcel.Parcel, error)
}

// ParcelLifecycle applies status changes to parcels.
//
// Side effects per target status:
//   - PENDING: stamps the sender position when the parcel has no GPS snapshot
//   - PICKED_UP: requires a courier, rejects a busy courier with a conflict,
//     stamps the courier position and the pickup time
//   - IN_TRANSIT: refreshes the courier position, stamps the pickup time if unset
//   - DELIVERED: stamps the delivery time, keeps the GPS snapshot
//   - CANCELLED: none
//
// Locator failures never fail a transition: they are logged and the snapshot is skipped.
type ParcelLifecycle struct {
	locator Locator
	clock   func() time.Time
	logger  *slog.Logger
}

// NewParcelLifecycle creates a lifecycle. A nil clock defaults to time.Now and a
// nil logger to slog.Default.
func NewParcelLifecycle(locator Locator, clock func() time.Time, logger *slog.Logger) (*ParcelLifecycle, error) {
	if locator == nil {
		return nil, errs.NewValueIsRequiredError("locator")
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ParcelLifecycle{
		locator: locator,
		clock:   clock,
		logger:  logger.With("component", "parcel-lifecycle"),
	}, nil
}

// Apply moves p to target. The move is validated before any lookup runs, so a
// rejected change leaves p untouched.
func (l *ParcelLifecycle) Apply(
	ctx context.Context, p *parcel.Parcel, target parcel.Status, workload CourierWorkload,
) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := p.Status().ValidateTransition(target); err != nil {
		return err
	}

	now := l.clock()
	switch target {
	case parcel.StatusPending:
		var senderPos *kernel.GeoPoint
		if p.GPS() == nil && p.SenderID() != nil {
			senderPos = l.senderPosition(ctx, p, *p.SenderID())
		}
		return p.ReturnToPending(senderPos, now)

	case parcel.StatusPickedUp:
		courierID := p.CourierID()
		if courierID == nil {
			return p.PickUp(nil, now)
		}
		if err := l.ensureCourierIsFree(ctx, p, *courierID, workload); err != nil {
			return err
		}
		return p.PickUp(l.courierPosition(ctx, p, *courierID), now)

	case parcel.StatusInTransit:
		var courierPos *kernel.GeoPoint
		if courierID := p.CourierID(); courierID != nil {
			courierPos = l.courierPosition(ctx, p, *courierID)
		}
		return p.StartTransit(courierPos, now)

	case parcel.StatusDelivered:
		return p.Deliver(now)

	case parcel.StatusCancelled:
		return p.Cancel(now)

	default:
		return errs.NewStatusIsInvalidError(target.String())
	}
}

// ensureCourierIsFree rejects the pickup when the courier holds another active parcel.
func (l *ParcelLifecycle) ensureCourierIsFree(
	ctx context.Context, p *parcel.Parcel, courierID kernel.UUID, workload CourierWorkload,
) error {
	if workload == nil {
		return errs.NewValueIsRequiredError("courier workload")
	}
	active, err := workload.GetActiveByCourier(ctx, courierID)
	if err != nil {
		return fmt.Errorf("list active parcels of courier %s: %w", courierID, err)
	}
	for _, other := range active {
		if other.IsEqual(p) {
			continue
		}
		return errs.NewConflictError("courier",
			fmt.Sprintf("courier %s already carries parcel %s", courierID, other.Reference()))
	}
	return nil
}

func (l *ParcelLifecycle) senderPosition(ctx context.Context, p *parcel.Parcel, senderID kernel.UUID) *kernel.GeoPoint {
	point, found, err := l.locator.SenderLocation(ctx, senderID)
	return l.position(p, "sender", senderID, point, found, err)
}

func (l *ParcelLifecycle) courierPosition(ctx context.Context, p *parcel.Parcel, courierID kernel.UUID) *kernel.GeoPoint {
	point, found, err := l.locator.CourierLocation(ctx, courierID)
	return l.position(p, "courier", courierID, point, found, err)
}

func (l *ParcelLifecycle) position(
	p *parcel.Parcel, role string, partyID kernel.UUID, point kernel.GeoPoint, found bool, err error,
) *kernel.GeoPoint {
	if err != nil {
		l.logger.Warn("party location lookup failed, GPS snapshot skipped",
			"parcel", p.Reference().String(), "role", role, "party_id", partyID.String(), "error", err)
		return nil
	}
	if !found {
		l.logger.Debug("party has no known location",
			"parcel", p.Reference().String(), "role", role, "party_id", partyID.String())
		return nil
	}
	return &point
}
