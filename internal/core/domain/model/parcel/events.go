package parcel

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
)

// EventType names a parcel domain event on the wire.
type EventType string

const (
	EventCreated         EventType = "parcel.created"
	EventUpdated         EventType = "parcel.updated"
	EventStatusChanged   EventType = "parcel.status_changed"
	EventPaymentRecorded EventType = "parcel.payment_recorded"
	EventDeleted         EventType = "parcel.deleted"
)

// Event is a fact about a parcel that other services may react to.
// Optional fields are omitted from the JSON form when zero.
type Event struct {
	ID             kernel.UUID   `json:"id"`
	Type           EventType     `json:"type"`
	ParcelID       kernel.UUID   `json:"parcelId"`
	Reference      string        `json:"reference"`
	Status         Status        `json:"status"`
	PreviousStatus Status        `json:"previousStatus,omitempty"`
	CourierID      *kernel.UUID  `json:"courierId,omitempty"`
	PaymentStatus  PaymentStatus `json:"paymentStatus,omitempty"`
	// PaymentReverted marks a delivered parcel whose payment moved away from PAID.
	PaymentReverted bool      `json:"paymentReverted,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

func (p *Parcel) raise(eventType EventType, at time.Time, decorate func(*Event)) {
	e := Event{
		ID:         kernel.NewUUID(),
		Type:       eventType,
		ParcelID:   p.id,
		Reference:  p.reference.String(),
		Status:     p.status,
		CourierID:  copyUUID(p.details.CourierID),
		OccurredAt: at.UTC(),
	}
	if decorate != nil {
		decorate(&e)
	}
	p.events = append(p.events, e)
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (p *Parcel) DomainEvents() []Event {
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *Parcel) ClearDomainEvents() {
	p.events = nil
}
