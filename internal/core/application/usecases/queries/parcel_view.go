// Package queries contains read operations. Parcel reads go straight to the
// parcels table with SQL and return flat read models instead of aggregates.
package queries

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelView is the read model of a parcel.
type ParcelView struct {
	ID            kernel.UUID
	Reference     string
	Category      parcel.Category
	Description   string
	WeightKg      float64
	Dimensions    string
	DeclaredValue kernel.Money
	Insured       bool

	SenderID      *kernel.UUID
	Sender        parcel.Contact
	PickupAddress string
	OriginCity    string

	Recipient       parcel.Contact
	DeliveryAddress string
	DestinationCity string
	Zone            parcel.Zone

	CourierID *kernel.UUID
	Courier   parcel.Contact

	Status              parcel.Status
	CreatedAt           time.Time
	PickedUpAt          *time.Time
	EstimatedDeliveryAt *time.Time
	ActualDeliveryAt    *time.Time

	TotalPrice    kernel.Money
	CourierShare  kernel.Money
	PlatformShare kernel.Money

	PaymentMethod parcel.PaymentMethod
	PaymentStatus parcel.PaymentStatus
	PaymentInfo   string

	TrackingHistory string
	ProofOfDelivery string
	// GPS is "<lat>,<lon>" or empty when no position was captured.
	GPS string
}

const selectParcelColumns = `
	SELECT
		id, reference, category, description, weight_kg, dimensions,
		declared_value_minor, insured,
		sender_id, sender_name, sender_phone, sender_email, pickup_address, origin_city,
		recipient_name, recipient_phone, recipient_email, delivery_address, destination_city, zone,
		courier_id, courier_name, courier_phone, courier_email,
		status, created_at, picked_up_at, estimated_delivery_at, actual_delivery_at,
		price_total, price_courier_share, price_platform_share,
		payment_method, payment_status, payment_info,
		tracking_history, proof_of_delivery, gps
	FROM parcels`

// parcelRow receives one row of selectParcelColumns.
type parcelRow struct {
	ID                  uuid.UUID
	Reference           string
	Category            string
	Description         string
	WeightKg            float64
	Dimensions          string
	DeclaredValueMinor  int64
	Insured             bool
	SenderID            *uuid.UUID
	SenderName          string
	SenderPhone         string
	SenderEmail         string
	PickupAddress       string
	OriginCity          string
	RecipientName       string
	RecipientPhone      string
	RecipientEmail      string
	DeliveryAddress     string
	DestinationCity     string
	Zone                string
	CourierID           *uuid.UUID
	CourierName         string
	CourierPhone        string
	CourierEmail        string
	Status              string
	CreatedAt           time.Time
	PickedUpAt          *time.Time
	EstimatedDeliveryAt *time.Time
	ActualDeliveryAt    *time.Time
	PriceTotal          int64
	PriceCourierShare   int64
	PricePlatformShare  int64
	PaymentMethod       string
	PaymentStatus       string
	PaymentInfo         string
	TrackingHistory     string
	ProofOfDelivery     string
	GPS                 *string `gorm:"column:gps"`
}

func (r parcelRow) toView() (ParcelView, error) {
	v := ParcelView{
		Reference:       r.Reference,
		Description:     r.Description,
		WeightKg:        r.WeightKg,
		Dimensions:      r.Dimensions,
		DeclaredValue:   kernel.MoneyFromMinor(r.DeclaredValueMinor),
		Insured:         r.Insured,
		Sender:          parcel.Contact{Name: r.SenderName, Phone: r.SenderPhone, Email: r.SenderEmail},
		PickupAddress:   r.PickupAddress,
		OriginCity:      r.OriginCity,
		Recipient:       parcel.Contact{Name: r.RecipientName, Phone: r.RecipientPhone, Email: r.RecipientEmail},
		DeliveryAddress: r.DeliveryAddress,
		DestinationCity: r.DestinationCity,
		Courier:         parcel.Contact{Name: r.CourierName, Phone: r.CourierPhone, Email: r.CourierEmail},
		CreatedAt:       r.CreatedAt.UTC(),
		TotalPrice:      kernel.MoneyFromMinor(r.PriceTotal),
		CourierShare:    kernel.MoneyFromMinor(r.PriceCourierShare),
		PlatformShare:   kernel.MoneyFromMinor(r.PricePlatformShare),
		PaymentInfo:     r.PaymentInfo,
		TrackingHistory: r.TrackingHistory,
		ProofOfDelivery: r.ProofOfDelivery,
	}

	var err error
	if v.ID, err = kernel.UUIDFromBytes(r.ID[:]); err != nil {
		return ParcelView{}, err
	}
	if v.SenderID, err = optionalUUID(r.SenderID); err != nil {
		return ParcelView{}, err
	}
	if v.CourierID, err = optionalUUID(r.CourierID); err != nil {
		return ParcelView{}, err
	}
	if v.Category, err = parcel.ParseCategory(r.Category); err != nil {
		return ParcelView{}, err
	}
	if v.Zone, err = parcel.ParseZone(r.Zone); err != nil {
		return ParcelView{}, err
	}
	if v.Status, err = parcel.ParseStatus(r.Status); err != nil {
		return ParcelView{}, err
	}
	if v.PaymentStatus, err = parcel.ParsePaymentStatus(r.PaymentStatus); err != nil {
		return ParcelView{}, err
	}
	if r.PaymentMethod != "" {
		if v.PaymentMethod, err = parcel.ParsePaymentMethod(r.PaymentMethod); err != nil {
			return ParcelView{}, err
		}
	}

	v.PickedUpAt = utcTime(r.PickedUpAt)
	v.EstimatedDeliveryAt = utcTime(r.EstimatedDeliveryAt)
	v.ActualDeliveryAt = utcTime(r.ActualDeliveryAt)
	if r.GPS != nil {
		v.GPS = *r.GPS
	}
	return v, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
