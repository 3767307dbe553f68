package queries

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

type QuoteParcelPriceQueryResponse struct {
	Total         kernel.Money
	CourierShare  kernel.Money
	PlatformShare kernel.Money
}

// QuoteParcelPriceQueryHandler runs the pricer without touching storage.
type QuoteParcelPriceQueryHandler struct {
	pricer parcel.Pricer
}

func NewQuoteParcelPriceQueryHandler(pricer parcel.Pricer) QuoteParcelPriceQueryHandler {
	return QuoteParcelPriceQueryHandler{pricer: pricer}
}

func (h QuoteParcelPriceQueryHandler) Handle(
	_ context.Context, query QuoteParcelPriceQuery,
) (QuoteParcelPriceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return QuoteParcelPriceQueryResponse{}, err
	}

	pricing, err := h.pricer.Quote(query.category, query.zone, query.weightKg, query.insured)
	if err != nil {
		return QuoteParcelPriceQueryResponse{}, err
	}

	return QuoteParcelPriceQueryResponse{
		Total:         pricing.Total(),
		CourierShare:  pricing.CourierShare(),
		PlatformShare: pricing.PlatformShare(),
	}, nil
}
