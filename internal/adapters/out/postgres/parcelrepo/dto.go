// Package parcelrepo persists parcel aggregates in the parcels table and maps
// them to and from their domain form.
package parcelrepo

import (
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

const (
	referenceIndex     = "ux_parcels_reference"
	activeCourierIndex = "ux_parcels_active_courier"
)

// ParcelDTO is the row layout of a parcel. Enums are stored by name and money
// in minor units.
type ParcelDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference string    `gorm:"size:12;not null;uniqueIndex:ux_parcels_reference"`

	Category           string  `gorm:"size:16;not null"`
	Description        string  `gorm:"type:text"`
	WeightKg           float64 `gorm:"not null"`
	Dimensions         string
	DeclaredValueMinor int64 `gorm:"not null"`
	Insured            bool  `gorm:"not null"`

	SenderID      *uuid.UUID `gorm:"type:uuid;index"`
	Sender        ContactDTO `gorm:"embedded;embeddedPrefix:sender_"`
	PickupAddress string
	OriginCity    string

	Recipient       ContactDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	DeliveryAddress string
	DestinationCity string
	Zone            string `gorm:"size:16;not null"`

	CourierID *uuid.UUID `gorm:"type:uuid;index"`
	Courier   ContactDTO `gorm:"embedded;embeddedPrefix:courier_"`

	Status              string    `gorm:"size:16;not null;index"`
	CreatedAt           time.Time `gorm:"not null;index"`
	PickedUpAt          *time.Time
	EstimatedDeliveryAt *time.Time
	ActualDeliveryAt    *time.Time

	Price PriceDTO `gorm:"embedded;embeddedPrefix:price_"`

	PaymentMethod string `gorm:"size:16"`
	PaymentStatus string `gorm:"size:16;not null"`
	PaymentInfo   string `gorm:"type:text"`

	TrackingHistory string  `gorm:"type:text"`
	ProofOfDelivery string
	GPS             *string `gorm:"column:gps;size:32"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

type ContactDTO struct {
	Name  string
	Phone string
	Email string
}

// PriceDTO holds the computed price in minor units.
type PriceDTO struct {
	Total         int64 `gorm:"not null"`
	CourierShare  int64 `gorm:"not null"`
	PlatformShare int64 `gorm:"not null"`
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	d := p.Details()
	pricing := p.Pricing()

	dto := ParcelDTO{
		ID:                 p.ID().Bytes(),
		Reference:          p.Reference().String(),
		Category:           d.Category.String(),
		Description:        d.Description,
		WeightKg:           d.WeightKg,
		Dimensions:         d.Dimensions,
		DeclaredValueMinor: d.DeclaredValue.Minor(),
		Insured:            d.Insured,
		SenderID:           rawUUID(d.SenderID),
		Sender:             contactDTO(d.Sender),
		PickupAddress:      d.PickupAddress,
		OriginCity:         d.OriginCity,
		Recipient:          contactDTO(d.Recipient),
		DeliveryAddress:    d.DeliveryAddress,
		DestinationCity:    d.DestinationCity,
		Zone:               d.Zone.String(),
		CourierID:          rawUUID(d.CourierID),
		Courier:            contactDTO(d.Courier),
		Status:             p.Status().String(),
		CreatedAt:          p.CreatedAt(),
		PickedUpAt:         p.PickedUpAt(),
		ActualDeliveryAt:   p.ActualDeliveryAt(),
		Price: PriceDTO{
			Total:         pricing.Total().Minor(),
			CourierShare:  pricing.CourierShare().Minor(),
			PlatformShare: pricing.PlatformShare().Minor(),
		},
		PaymentStatus:   p.PaymentStatus().String(),
		PaymentInfo:     d.PaymentInfo,
		TrackingHistory: d.TrackingHistory,
		ProofOfDelivery: d.ProofOfDelivery,
	}
	dto.EstimatedDeliveryAt = d.EstimatedDeliveryAt
	if d.PaymentMethod.IsSet() {
		dto.PaymentMethod = d.PaymentMethod.String()
	}
	if gps := p.GPS(); gps != nil {
		s := gps.String()
		dto.GPS = &s
	}
	return dto
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	reference, err := parcel.NewReference(dto.Reference)
	if err != nil {
		return nil, err
	}
	category, err := parcel.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}
	zone, err := parcel.ParseZone(dto.Zone)
	if err != nil {
		return nil, err
	}
	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := parcel.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var paymentMethod parcel.PaymentMethod
	if dto.PaymentMethod != "" {
		if paymentMethod, err = parcel.ParsePaymentMethod(dto.PaymentMethod); err != nil {
			return nil, err
		}
	}

	senderID, err := domainUUID(dto.SenderID)
	if err != nil {
		return nil, err
	}
	courierID, err := domainUUID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	pricing, err := parcel.RestorePricing(
		kernel.MoneyFromMinor(dto.Price.Total),
		kernel.MoneyFromMinor(dto.Price.CourierShare),
		kernel.MoneyFromMinor(dto.Price.PlatformShare),
	)
	if err != nil {
		return nil, fmt.Errorf("parcel %s: %w", dto.Reference, err)
	}

	var gps *kernel.GeoPoint
	if dto.GPS != nil {
		point, gpsErr := kernel.ParseGeoPoint(*dto.GPS)
		if gpsErr != nil {
			return nil, gpsErr
		}
		gps = &point
	}

	return parcel.RestoreParcel(parcel.Snapshot{
		ID:        id,
		Reference: reference,
		Details: parcel.Details{
			Category:            category,
			Description:         dto.Description,
			WeightKg:            dto.WeightKg,
			Dimensions:          dto.Dimensions,
			DeclaredValue:       kernel.MoneyFromMinor(dto.DeclaredValueMinor),
			Insured:             dto.Insured,
			SenderID:            senderID,
			Sender:              contact(dto.Sender),
			PickupAddress:       dto.PickupAddress,
			OriginCity:          dto.OriginCity,
			Recipient:           contact(dto.Recipient),
			DeliveryAddress:     dto.DeliveryAddress,
			DestinationCity:     dto.DestinationCity,
			Zone:                zone,
			CourierID:           courierID,
			Courier:             contact(dto.Courier),
			PaymentMethod:       paymentMethod,
			PaymentInfo:         dto.PaymentInfo,
			TrackingHistory:     dto.TrackingHistory,
			ProofOfDelivery:     dto.ProofOfDelivery,
			EstimatedDeliveryAt: utc(dto.EstimatedDeliveryAt),
		},
		Status:           status,
		CreatedAt:        dto.CreatedAt,
		PickedUpAt:       utc(dto.PickedUpAt),
		ActualDeliveryAt: utc(dto.ActualDeliveryAt),
		Pricing:          pricing,
		PaymentStatus:    paymentStatus,
		GPS:              gps,
	})
}

func contactDTO(c parcel.Contact) ContactDTO {
	return ContactDTO{Name: c.Name, Phone: c.Phone, Email: c.Email}
}

func contact(c ContactDTO) parcel.Contact {
	return parcel.Contact{Name: c.Name, Phone: c.Phone, Email: c.Email}
}

func rawUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
