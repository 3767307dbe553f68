package ports

import (
	"context"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// PartyRole tells senders and couriers apart in the location registry.
type PartyRole string

const (
	RoleSender  PartyRole = "sender"
	RoleCourier PartyRole = "courier"
)

func ParsePartyRole(s string) (PartyRole, error) {
	switch PartyRole(s) {
	case RoleSender, RoleCourier:
		return PartyRole(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("party role",
			fmt.Errorf("%q is neither %s nor %s", s, RoleSender, RoleCourier))
	}
}

// GeoLookup returns the current position of a sender or courier.
// found is false when the party has never reported a position.
type GeoLookup interface {
	SenderLocation(ctx context.Context, senderID kernel.UUID) (point kernel.GeoPoint, found bool, err error)
	CourierLocation(ctx context.Context, courierID kernel.UUID) (point kernel.GeoPoint, found bool, err error)
}

// LocationRegistry records the positions GeoLookup serves.
type LocationRegistry interface {
	SetLocation(ctx context.Context, role PartyRole, partyID kernel.UUID, point kernel.GeoPoint, at time.Time) error
}
