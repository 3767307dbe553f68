package parcel

import (
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// Pricing is the derived price of a parcel. CourierShare + PlatformShare always equals Total.
type Pricing struct {
	total         kernel.Money
	courierShare  kernel.Money
	platformShare kernel.Money
}

// NewPricing splits total into the given courier share and the platform remainder.
func NewPricing(total, courierShare kernel.Money) (Pricing, error) {
	if total.IsNegative() {
		return Pricing{}, errs.NewValueIsOutOfRangeError("total price", total.String(), "0.00", "unbounded")
	}
	if courierShare.IsNegative() || courierShare.Minor() > total.Minor() {
		return Pricing{}, errs.NewValueIsOutOfRangeError("courier share", courierShare.String(), "0.00", total.String())
	}
	return Pricing{
		total:         total,
		courierShare:  courierShare,
		platformShare: total.Sub(courierShare),
	}, nil
}

// RestorePricing rebuilds a stored price and checks that the shares still add up.
func RestorePricing(total, courierShare, platformShare kernel.Money) (Pricing, error) {
	p, err := NewPricing(total, courierShare)
	if err != nil {
		return Pricing{}, err
	}
	if p.platformShare != platformShare {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("%s + %s does not equal %s", courierShare, platformShare, total))
	}
	return p, nil
}

func (p Pricing) Total() kernel.Money {
	return p.total
}

func (p Pricing) CourierShare() kernel.Money {
	return p.courierShare
}

func (p Pricing) PlatformShare() kernel.Money {
	return p.platformShare
}

// Pricer computes the price of a parcel from its tariff inputs.
type Pricer interface {
	Quote(category Category, zone Zone, weightKg float64, insured bool) (Pricing, error)
}
