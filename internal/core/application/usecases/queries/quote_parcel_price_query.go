package queries

import (
	"errors"
	"math"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrQuoteParcelPriceQueryIsNotConstructed = errors.New(
	"QuoteParcelPriceQuery must be created via NewQuoteParcelPriceQuery constructor",
)

// QuoteParcelPriceQuery prices a parcel that does not exist yet.
type QuoteParcelPriceQuery struct {
	category parcel.Category
	zone     parcel.Zone
	weightKg float64
	insured  bool

	guard guard.ConstructorGuard
}

func NewQuoteParcelPriceQuery(
	category parcel.Category, zone parcel.Zone, weightKg float64, insured bool,
) (QuoteParcelPriceQuery, error) {
	var weightErr error
	if weightKg < 0 || math.IsNaN(weightKg) {
		weightErr = errs.NewValueIsOutOfRangeError("weight", weightKg, 0, "unbounded")
	}
	if err := errors.Join(category.Validate(), zone.Validate(), weightErr); err != nil {
		return QuoteParcelPriceQuery{}, err
	}

	return QuoteParcelPriceQuery{
		category: category,
		zone:     zone,
		weightKg: weightKg,
		insured:  insured,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q QuoteParcelPriceQuery) Validate() error {
	return q.guard.Validate(ErrQuoteParcelPriceQueryIsNotConstructed)
}

func (q QuoteParcelPriceQuery) Category() parcel.Category {
	return q.category
}

func (q QuoteParcelPriceQuery) Zone() parcel.Zone {
	return q.zone
}

func (q QuoteParcelPriceQuery) WeightKg() float64 {
	return q.weightKg
}

func (q QuoteParcelPriceQuery) Insured() bool {
	return q.insured
}
