package parcel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned when a Parcel was not built by NewParcel or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("parcel must be created via NewParcel or RestoreParcel")

// Contact holds the reachable details of a party.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Details are the caller supplied attributes of a parcel. Everything derived
// (reference, status, timestamps other than the delivery estimate, pricing,
// payment status, GPS snapshot) lives on Parcel itself.
type Details struct {
	Category      Category
	Description   string
	WeightKg      float64
	Dimensions    string
	DeclaredValue kernel.Money
	Insured       bool

	SenderID      *kernel.UUID
	Sender        Contact
	PickupAddress string
	OriginCity    string

	Recipient       Contact
	DeliveryAddress string
	DestinationCity string
	Zone            Zone

	CourierID *kernel.UUID
	Courier   Contact

	PaymentMethod PaymentMethod
	PaymentInfo   string

	TrackingHistory     string
	ProofOfDelivery     string
	EstimatedDeliveryAt *time.Time
}

// Parcel is the aggregate root of the delivery pipeline.
//
// Invariants:
//   - The reference never changes once assigned
//   - Pricing always matches the current category, zone, weight and insurance flag
//   - Status only moves along the transition graph of Status
//   - The GPS snapshot is only written at creation and by ReturnToPending, PickUp and StartTransit
type Parcel struct {
	id        kernel.UUID
	reference Reference
	details   Details

	status           Status
	createdAt        time.Time
	pickedUpAt       *time.Time
	actualDeliveryAt *time.Time

	pricing       Pricing
	paymentStatus PaymentStatus
	gps           *kernel.GeoPoint

	events        []Event
	isConstructed bool
}

// NewParcel builds a PENDING parcel with payment PENDING and a price from pricer.
// origin, when known, becomes the first GPS snapshot.
//
// Example:
//
//	p, err := parcel.NewParcel(kernel.NewUUID(), ref, parcel.Details{
//	    Category: parcel.CategoryStandard,
//	    Zone:     parcel.ZoneUrban,
//	    WeightKg: 7,
//	}, nil, engine, time.Now())
//	// p.Pricing().Total() == 4500.00
func NewParcel(
	id kernel.UUID, reference Reference, details Details, origin *kernel.GeoPoint, pricer Pricer, now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:        StatusPending,
		paymentStatus: PaymentStatusPending,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setReference(reference),
		validateDetails(details),
		details.Category.Validate(),
		details.Zone.Validate(),
	); err != nil {
		return nil, err
	}

	p.details = normalizeDetails(details)
	if err := p.reprice(pricer); err != nil {
		return nil, err
	}
	p.gps = copyGeoPoint(origin)

	p.raise(EventCreated, now, nil)
	return p, nil
}

// Snapshot is the full stored state of a parcel, used by repositories.
type Snapshot struct {
	ID               kernel.UUID
	Reference        Reference
	Details          Details
	Status           Status
	CreatedAt        time.Time
	PickedUpAt       *time.Time
	ActualDeliveryAt *time.Time
	Pricing          Pricing
	PaymentStatus    PaymentStatus
	GPS              *kernel.GeoPoint
}

// RestoreParcel rebuilds a parcel from storage without raising events or repricing.
func RestoreParcel(s Snapshot) (*Parcel, error) {
	p := &Parcel{isConstructed: true}
	if err := errors.Join(
		p.setID(s.ID),
		p.setReference(s.Reference),
		validateDetails(s.Details),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	p.details = normalizeDetails(s.Details)
	p.status = s.Status
	p.createdAt = s.CreatedAt.UTC()
	p.pickedUpAt = copyTime(s.PickedUpAt)
	p.actualDeliveryAt = copyTime(s.ActualDeliveryAt)
	p.pricing = s.Pricing
	p.paymentStatus = s.PaymentStatus
	p.gps = copyGeoPoint(s.GPS)
	return p, nil
}

// Validate ensures the parcel was built by NewParcel or RestoreParcel.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) Reference() Reference {
	return p.reference
}

// Details returns a copy of the caller supplied attributes.
func (p *Parcel) Details() Details {
	d := p.details
	d.SenderID = copyUUID(d.SenderID)
	d.CourierID = copyUUID(d.CourierID)
	d.EstimatedDeliveryAt = copyTime(d.EstimatedDeliveryAt)
	return d
}

func (p *Parcel) Status() Status {
	return p.status
}

func (p *Parcel) CourierID() *kernel.UUID {
	return copyUUID(p.details.CourierID)
}

func (p *Parcel) SenderID() *kernel.UUID {
	return copyUUID(p.details.SenderID)
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Parcel) PickedUpAt() *time.Time {
	return copyTime(p.pickedUpAt)
}

func (p *Parcel) EstimatedDeliveryAt() *time.Time {
	return copyTime(p.details.EstimatedDeliveryAt)
}

func (p *Parcel) ActualDeliveryAt() *time.Time {
	return copyTime(p.actualDeliveryAt)
}

func (p *Parcel) Pricing() Pricing {
	return p.pricing
}

func (p *Parcel) PaymentStatus() PaymentStatus {
	return p.paymentStatus
}

// GPS returns the last recorded position, or nil when none was captured.
func (p *Parcel) GPS() *kernel.GeoPoint {
	return copyGeoPoint(p.gps)
}

// Revise re-applies the caller supplied attributes and recomputes the price.
//
// Rules:
//   - An unknown category and a nil sender id keep the stored values
//   - Addresses, cities, zone and the courier id only change while PENDING, and
//     address fields and zone only when provided
//   - The estimated delivery time is accepted only while it is unset
//   - Payment method and info are kept when not provided
//   - Every other attribute is overwritten, even with empty values
//
// Revise is all or nothing: when repricing fails the parcel is left unchanged.
func (p *Parcel) Revise(details Details, pricer Pricer, now time.Time) error {
	if err := validateDetails(details); err != nil {
		return err
	}

	next := p.details
	if details.Category != CategoryUnknown {
		if err := details.Category.Validate(); err != nil {
			return err
		}
		next.Category = details.Category
	}
	next.Description = details.Description
	next.WeightKg = details.WeightKg
	next.Dimensions = details.Dimensions
	next.DeclaredValue = details.DeclaredValue
	next.Insured = details.Insured

	if details.SenderID != nil {
		next.SenderID = copyUUID(details.SenderID)
	}
	next.Sender = details.Sender
	next.Recipient = details.Recipient
	next.Courier = details.Courier

	if p.status == StatusPending {
		if err := reviseLogistics(&next, details); err != nil {
			return err
		}
	}

	if details.PaymentMethod.IsSet() {
		next.PaymentMethod = details.PaymentMethod
	}
	if details.PaymentInfo != "" {
		next.PaymentInfo = details.PaymentInfo
	}
	next.TrackingHistory = details.TrackingHistory
	next.ProofOfDelivery = details.ProofOfDelivery
	if next.EstimatedDeliveryAt == nil && details.EstimatedDeliveryAt != nil {
		next.EstimatedDeliveryAt = copyTime(details.EstimatedDeliveryAt)
	}

	previous := p.details
	p.details = normalizeDetails(next)
	if err := p.reprice(pricer); err != nil {
		p.details = previous
		return err
	}

	p.raise(EventUpdated, now, nil)
	return nil
}

func reviseLogistics(next *Details, details Details) error {
	if details.PickupAddress != "" {
		next.PickupAddress = details.PickupAddress
	}
	if details.OriginCity != "" {
		next.OriginCity = details.OriginCity
	}
	if details.DeliveryAddress != "" {
		next.DeliveryAddress = details.DeliveryAddress
	}
	if details.DestinationCity != "" {
		next.DestinationCity = details.DestinationCity
	}
	if details.Zone != ZoneUnknown {
		if err := details.Zone.Validate(); err != nil {
			return err
		}
		next.Zone = details.Zone
	}
	next.CourierID = copyUUID(details.CourierID)
	return nil
}

// ReturnToPending re-enters PENDING. The sender position is stamped only when
// no GPS snapshot exists yet; a nil position leaves the snapshot untouched.
func (p *Parcel) ReturnToPending(senderPos *kernel.GeoPoint, now time.Time) error {
	return p.changeStatus(StatusPending, now, func() error {
		if p.gps == nil && senderPos != nil {
			p.gps = copyGeoPoint(senderPos)
		}
		return nil
	})
}

// PickUp hands the parcel to its assigned courier. Courier exclusivity is
// checked by the caller, which can see the courier's other parcels.
func (p *Parcel) PickUp(courierPos *kernel.GeoPoint, now time.Time) error {
	return p.changeStatus(StatusPickedUp, now, func() error {
		if p.details.CourierID == nil {
			return errs.NewPreconditionFailedError("parcel cannot be picked up without an assigned courier")
		}
		if courierPos != nil {
			p.gps = copyGeoPoint(courierPos)
		}
		at := now.UTC()
		p.pickedUpAt = &at
		return nil
	})
}

// StartTransit moves the parcel IN_TRANSIT, refreshing the GPS snapshot from
// the courier position when a courier is assigned.
func (p *Parcel) StartTransit(courierPos *kernel.GeoPoint, now time.Time) error {
	return p.changeStatus(StatusInTransit, now, func() error {
		if p.details.CourierID != nil && courierPos != nil {
			p.gps = copyGeoPoint(courierPos)
		}
		if p.pickedUpAt == nil {
			at := now.UTC()
			p.pickedUpAt = &at
		}
		return nil
	})
}

// Deliver stamps the actual delivery time. The GPS snapshot is kept as evidence.
func (p *Parcel) Deliver(now time.Time) error {
	return p.changeStatus(StatusDelivered, now, func() error {
		at := now.UTC()
		p.actualDeliveryAt = &at
		return nil
	})
}

func (p *Parcel) Cancel(now time.Time) error {
	return p.changeStatus(StatusCancelled, now, nil)
}

// changeStatus validates the move first so a rejected transition has no side effects.
func (p *Parcel) changeStatus(target Status, now time.Time, effects func() error) error {
	next, err := p.status.TransitionTo(target)
	if err != nil {
		return err
	}
	if effects != nil {
		if err := effects(); err != nil {
			return err
		}
	}

	previous := p.status
	p.status = next
	p.raise(EventStatusChanged, now, func(e *Event) {
		e.PreviousStatus = previous
	})
	return nil
}

// PaymentUpdate carries the payment fields a caller wants to change. Nil fields are left untouched.
type PaymentUpdate struct {
	Method *PaymentMethod
	Status *PaymentStatus
	Info   *string
}

// RecordPayment applies the present payment fields. The price is not recomputed.
//
// Moving a delivered parcel away from PAID is allowed; the raised event carries
// PaymentReverted so downstream systems can flag it.
func (p *Parcel) RecordPayment(update PaymentUpdate, now time.Time) error {
	if update.Method != nil {
		if err := update.Method.Validate(); err != nil {
			return err
		}
	}
	if update.Status != nil {
		if err := update.Status.Validate(); err != nil {
			return err
		}
	}

	reverted := p.status == StatusDelivered && p.paymentStatus == PaymentStatusPaid &&
		update.Status != nil && *update.Status != PaymentStatusPaid

	if update.Method != nil {
		p.details.PaymentMethod = *update.Method
	}
	if update.Status != nil {
		p.paymentStatus = *update.Status
	}
	if update.Info != nil {
		p.details.PaymentInfo = *update.Info
	}

	p.raise(EventPaymentRecorded, now, func(e *Event) {
		e.PaymentStatus = p.paymentStatus
		e.PaymentReverted = reverted
	})
	return nil
}

// MarkDeleted records the removal of the parcel so the deletion is published.
func (p *Parcel) MarkDeleted(now time.Time) {
	p.raise(EventDeleted, now, nil)
}

func (p *Parcel) reprice(pricer Pricer) error {
	if pricer == nil {
		return errs.NewValueIsRequiredError("pricer")
	}
	pricing, err := pricer.Quote(p.details.Category, p.details.Zone, p.details.WeightKg, p.details.Insured)
	if err != nil {
		return err
	}
	p.pricing = pricing
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setReference(reference Reference) error {
	if err := reference.Validate(); err != nil {
		return err
	}
	p.reference = reference
	return nil
}

func validateDetails(d Details) error {
	var errList []error
	if math.IsNaN(d.WeightKg) || math.IsInf(d.WeightKg, 0) || d.WeightKg < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("weight", d.WeightKg, 0, math.Inf(1)))
	}
	if d.DeclaredValue.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("declared value",
			fmt.Errorf("%s is negative", d.DeclaredValue)))
	}
	if d.SenderID != nil {
		errList = append(errList, d.SenderID.Validate())
	}
	if d.CourierID != nil {
		errList = append(errList, d.CourierID.Validate())
	}
	if d.PaymentMethod.IsSet() {
		errList = append(errList, d.PaymentMethod.Validate())
	}
	return errors.Join(errList...)
}

func normalizeDetails(d Details) Details {
	d.SenderID = copyUUID(d.SenderID)
	d.CourierID = copyUUID(d.CourierID)
	if d.EstimatedDeliveryAt != nil {
		at := d.EstimatedDeliveryAt.UTC()
		d.EstimatedDeliveryAt = &at
	}
	return d
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyGeoPoint(g *kernel.GeoPoint) *kernel.GeoPoint {
	if g == nil {
		return nil
	}
	c := *g
	return &c
}
