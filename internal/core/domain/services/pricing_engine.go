package services

import (
	"errors"
	"fmt"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

const (
	// insuredNumerator / insuredDenominator is the 5% insurance surcharge.
	insuredNumerator   = 105
	insuredDenominator = 100

	// courierNumerator / courierDenominator is the courier's 75% share of the total.
	courierNumerator   = 75
	courierDenominator = 100
)

// ErrTariffNotFound is matched by every TariffNotFoundError.
var ErrTariffNotFound = errors.New("tariff not found")

// TariffNotFoundError reports that no tariff cell prices the given inputs.
// It matches both ErrTariffNotFound and errs.ErrValueIsOutOfRange.
type TariffNotFoundError struct {
	Category parcel.Category
	Zone     parcel.Zone
	WeightKg float64
}

func NewTariffNotFoundError(category parcel.Category, zone parcel.Zone, weightKg float64) *TariffNotFoundError {
	return &TariffNotFoundError{Category: category, Zone: zone, WeightKg: weightKg}
}

func (e *TariffNotFoundError) Error() string {
	return fmt.Sprintf("%s: no price for %s/%s at %.3f kg", ErrTariffNotFound, e.Category, e.Zone, e.WeightKg)
}

func (e *TariffNotFoundError) Is(target error) bool {
	return target == ErrTariffNotFound || target == errs.ErrValueIsOutOfRange
}

// PricingEngine computes parcel prices from a tariff table.
//
// The base price comes from the table; an insured parcel pays base*1.05,
// rounded half up to the cent. The courier receives 75% of the total, rounded
// the same way, and the platform keeps the remainder so the shares always add
// up to the total.
//
// Example:
//
//	engine, _ := services.NewPricingEngine(services.DefaultTariffTable())
//	p, _ := engine.Quote(parcel.CategoryStandard, parcel.ZoneUrban, 7, true)
//	// p.Total() 4725.00, p.CourierShare() 3543.75, p.PlatformShare() 1181.25
type PricingEngine struct {
	table TariffTable
}

// NewPricingEngine validates table and returns an engine over it.
func NewPricingEngine(table TariffTable) (*PricingEngine, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &PricingEngine{table: table}, nil
}

// Quote implements parcel.Pricer.
func (e *PricingEngine) Quote(
	category parcel.Category, zone parcel.Zone, weightKg float64, insured bool,
) (parcel.Pricing, error) {
	base, ok := e.table.Lookup(category, zone, weightKg)
	if !ok {
		return parcel.Pricing{}, NewTariffNotFoundError(category, zone, weightKg)
	}

	total := base
	if insured {
		total = base.MulRatio(insuredNumerator, insuredDenominator)
	}
	return parcel.NewPricing(total, total.MulRatio(courierNumerator, courierDenominator))
}

// MaxWeightKg is the heaviest parcel the engine can price.
func (e *PricingEngine) MaxWeightKg() float64 {
	return e.table.MaxWeightKg()
}
