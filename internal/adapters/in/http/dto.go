package http

import (
	"errors"
	"time"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newErrorResponse(code int, message string) errorResponse {
	return errorResponse{Code: code, Message: message}
}

type contactDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (c contactDTO) toDomain() parcel.Contact {
	return parcel.Contact{Name: c.Name, Phone: c.Phone, Email: c.Email}
}

func newContactDTO(c parcel.Contact) contactDTO {
	return contactDTO{Name: c.Name, Phone: c.Phone, Email: c.Email}
}

// parcelRequest is the body of create and update.
type parcelRequest struct {
	Category      string       `json:"category"`
	Description   string       `json:"description"`
	WeightKg      float64      `json:"weightKg"`
	Dimensions    string       `json:"dimensions"`
	DeclaredValue kernel.Money `json:"declaredValue"`
	Insured       bool         `json:"insured"`

	SenderID      *string    `json:"senderId"`
	Sender        contactDTO `json:"sender"`
	PickupAddress string     `json:"pickupAddress"`
	OriginCity    string     `json:"originCity"`

	Recipient       contactDTO `json:"recipient"`
	DeliveryAddress string     `json:"deliveryAddress"`
	DestinationCity string     `json:"destinationCity"`
	Zone            string     `json:"zone"`

	CourierID *string    `json:"courierId"`
	Courier   contactDTO `json:"courier"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentInfo   string `json:"paymentInfo"`

	TrackingHistory     string     `json:"trackingHistory"`
	ProofOfDelivery     string     `json:"proofOfDelivery"`
	EstimatedDeliveryAt *time.Time `json:"estimatedDeliveryAt"`
}

// toDetails leaves an omitted category or zone unknown; creation rejects that
// while an update keeps the stored value.
func (r parcelRequest) toDetails() (parcel.Details, error) {
	senderID, senderErr := optionalUUID(r.SenderID)
	courierID, courierErr := optionalUUID(r.CourierID)

	var (
		category    parcel.Category
		categoryErr error
		zone        parcel.Zone
		zoneErr     error
		method      parcel.PaymentMethod
		methodErr   error
	)
	if r.Category != "" {
		category, categoryErr = parcel.ParseCategory(r.Category)
	}
	if r.Zone != "" {
		zone, zoneErr = parcel.ParseZone(r.Zone)
	}
	if r.PaymentMethod != "" {
		method, methodErr = parcel.ParsePaymentMethod(r.PaymentMethod)
	}

	if err := errors.Join(categoryErr, zoneErr, senderErr, courierErr, methodErr); err != nil {
		return parcel.Details{}, err
	}

	return parcel.Details{
		Category:            category,
		Description:         r.Description,
		WeightKg:            r.WeightKg,
		Dimensions:          r.Dimensions,
		DeclaredValue:       r.DeclaredValue,
		Insured:             r.Insured,
		SenderID:            senderID,
		Sender:              r.Sender.toDomain(),
		PickupAddress:       r.PickupAddress,
		OriginCity:          r.OriginCity,
		Recipient:           r.Recipient.toDomain(),
		DeliveryAddress:     r.DeliveryAddress,
		DestinationCity:     r.DestinationCity,
		Zone:                zone,
		CourierID:           courierID,
		Courier:             r.Courier.toDomain(),
		PaymentMethod:       method,
		PaymentInfo:         r.PaymentInfo,
		TrackingHistory:     r.TrackingHistory,
		ProofOfDelivery:     r.ProofOfDelivery,
		EstimatedDeliveryAt: r.EstimatedDeliveryAt,
	}, nil
}

// paymentRequest only carries the fields the caller wants to change.
type paymentRequest struct {
	PaymentMethod *string `json:"paymentMethod"`
	PaymentStatus *string `json:"paymentStatus"`
	PaymentInfo   *string `json:"paymentInfo"`
}

func (r paymentRequest) toUpdate() (parcel.PaymentUpdate, error) {
	var update parcel.PaymentUpdate
	if r.PaymentMethod != nil {
		method, err := parcel.ParsePaymentMethod(*r.PaymentMethod)
		if err != nil {
			return parcel.PaymentUpdate{}, err
		}
		update.Method = &method
	}
	if r.PaymentStatus != nil {
		status, err := parcel.ParsePaymentStatus(*r.PaymentStatus)
		if err != nil {
			return parcel.PaymentUpdate{}, err
		}
		update.Status = &status
	}
	update.Info = r.PaymentInfo
	return update, nil
}

type quoteRequest struct {
	Category string  `json:"category"`
	Zone     string  `json:"zone"`
	WeightKg float64 `json:"weightKg"`
	Insured  bool    `json:"insured"`
}

type quoteResponse struct {
	Total         kernel.Money `json:"total"`
	CourierShare  kernel.Money `json:"courierShare"`
	PlatformShare kernel.Money `json:"platformShare"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type parcelResponse struct {
	ID            string       `json:"id"`
	Reference     string       `json:"reference"`
	Category      string       `json:"category"`
	Description   string       `json:"description"`
	WeightKg      float64      `json:"weightKg"`
	Dimensions    string       `json:"dimensions"`
	DeclaredValue kernel.Money `json:"declaredValue"`
	Insured       bool         `json:"insured"`

	SenderID      *string    `json:"senderId"`
	Sender        contactDTO `json:"sender"`
	PickupAddress string     `json:"pickupAddress"`
	OriginCity    string     `json:"originCity"`

	Recipient       contactDTO `json:"recipient"`
	DeliveryAddress string     `json:"deliveryAddress"`
	DestinationCity string     `json:"destinationCity"`
	Zone            string     `json:"zone"`

	CourierID *string    `json:"courierId"`
	Courier   contactDTO `json:"courier"`

	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"createdAt"`
	PickedUpAt          *time.Time `json:"pickedUpAt"`
	EstimatedDeliveryAt *time.Time `json:"estimatedDeliveryAt"`
	ActualDeliveryAt    *time.Time `json:"actualDeliveryAt"`

	TotalPrice    kernel.Money `json:"totalPrice"`
	CourierShare  kernel.Money `json:"courierShare"`
	PlatformShare kernel.Money `json:"platformShare"`

	PaymentMethod string `json:"paymentMethod,omitempty"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentInfo   string `json:"paymentInfo"`

	TrackingHistory string `json:"trackingHistory"`
	ProofOfDelivery string `json:"proofOfDelivery"`
	GPS             string `json:"gps,omitempty"`
}

func newParcelResponse(v queries.ParcelView) parcelResponse {
	resp := parcelResponse{
		ID:                  v.ID.String(),
		Reference:           v.Reference,
		Category:            v.Category.String(),
		Description:         v.Description,
		WeightKg:            v.WeightKg,
		Dimensions:          v.Dimensions,
		DeclaredValue:       v.DeclaredValue,
		Insured:             v.Insured,
		SenderID:            uuidString(v.SenderID),
		Sender:              newContactDTO(v.Sender),
		PickupAddress:       v.PickupAddress,
		OriginCity:          v.OriginCity,
		Recipient:           newContactDTO(v.Recipient),
		DeliveryAddress:     v.DeliveryAddress,
		DestinationCity:     v.DestinationCity,
		Zone:                v.Zone.String(),
		CourierID:           uuidString(v.CourierID),
		Courier:             newContactDTO(v.Courier),
		Status:              v.Status.String(),
		CreatedAt:           v.CreatedAt,
		PickedUpAt:          v.PickedUpAt,
		EstimatedDeliveryAt: v.EstimatedDeliveryAt,
		ActualDeliveryAt:    v.ActualDeliveryAt,
		TotalPrice:          v.TotalPrice,
		CourierShare:        v.CourierShare,
		PlatformShare:       v.PlatformShare,
		PaymentStatus:       v.PaymentStatus.String(),
		PaymentInfo:         v.PaymentInfo,
		TrackingHistory:     v.TrackingHistory,
		ProofOfDelivery:     v.ProofOfDelivery,
		GPS:                 v.GPS,
	}
	if v.PaymentMethod.IsSet() {
		resp.PaymentMethod = v.PaymentMethod.String()
	}
	return resp
}

func newParcelResponses(views []queries.ParcelView) []parcelResponse {
	resp := make([]parcelResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, newParcelResponse(v))
	}
	return resp
}

func optionalUUID(s *string) (*kernel.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil //nolint:nilnil // absent id
	}
	id, err := kernel.UUIDFromString(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
