package services_test

import (
	"fmt"
	"sync"
	"testing"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *services.PricingEngine {
	t.Helper()
	engine, err := services.NewPricingEngine(services.DefaultTariffTable())
	require.NoError(t, err)
	return engine
}

func TestPricingEngine_Quote_Table(t *testing.T) {
	engine := newEngine(t)
	weights := []float64{5, 10, 20, 30}
	grid := map[parcel.Category]map[parcel.Zone][4]int64{
		parcel.CategoryStandard: {
			parcel.ZoneUrban:         {3000, 4500, 7500, 11000},
			parcel.ZoneInterurban:    {7500, 10000, 15000, 20000},
			parcel.ZoneInternational: {34650, 66300, 130600, 196000},
		},
		parcel.CategoryValuable: {
			parcel.ZoneUrban:         {4000, 6000, 9500, 14000},
			parcel.ZoneInterurban:    {8000, 12000, 18000, 25000},
			parcel.ZoneInternational: {36382, 69615, 137130, 205800},
		},
		parcel.CategoryBulky: {
			parcel.ZoneUrban:         {8000, 12000, 18000, 26000},
			parcel.ZoneInterurban:    {15000, 20000, 30000, 40000},
			parcel.ZoneInternational: {65000, 100000, 150000, 250000},
		},
	}

	for category, zones := range grid {
		for zone, prices := range zones {
			for i, weight := range weights {
				t.Run(fmt.Sprintf("%s/%s/%v", category, zone, weight), func(t *testing.T) {
					p, err := engine.Quote(category, zone, weight, false)

					require.NoError(t, err)
					assert.Equal(t, kernel.MoneyFromMajor(prices[i]), p.Total())
				})
			}
		}
	}
}

func TestPricingEngine_Quote(t *testing.T) {
	engine := newEngine(t)

	t.Run("standard urban 7kg uninsured", func(t *testing.T) {
		p, err := engine.Quote(parcel.CategoryStandard, parcel.ZoneUrban, 7, false)

		require.NoError(t, err)
		assert.Equal(t, "4500.00", p.Total().String())
		assert.Equal(t, "3375.00", p.CourierShare().String())
		assert.Equal(t, "1125.00", p.PlatformShare().String())
	})

	t.Run("standard urban 7kg insured", func(t *testing.T) {
		p, err := engine.Quote(parcel.CategoryStandard, parcel.ZoneUrban, 7, true)

		require.NoError(t, err)
		assert.Equal(t, "4725.00", p.Total().String())
		assert.Equal(t, "3543.75", p.CourierShare().String())
		assert.Equal(t, "1181.25", p.PlatformShare().String())
	})

	t.Run("weight zero falls in the first tier", func(t *testing.T) {
		p, err := engine.Quote(parcel.CategoryBulky, parcel.ZoneInterurban, 0, false)

		require.NoError(t, err)
		assert.Equal(t, "15000.00", p.Total().String())
	})

	t.Run("tier bounds are inclusive", func(t *testing.T) {
		atBound, err := engine.Quote(parcel.CategoryStandard, parcel.ZoneUrban, 10, false)
		require.NoError(t, err)
		above, err := engine.Quote(parcel.CategoryStandard, parcel.ZoneUrban, 10.01, false)
		require.NoError(t, err)

		assert.Equal(t, "4500.00", atBound.Total().String())
		assert.Equal(t, "7500.00", above.Total().String())
	})
}

func TestPricingEngine_InsuredSurcharge(t *testing.T) {
	engine := newEngine(t)

	for _, c := range parcel.Categories() {
		for _, z := range parcel.Zones() {
			for _, w := range []float64{1, 8, 15, 25} {
				plain, err := engine.Quote(c, z, w, false)
				require.NoError(t, err)
				insured, err := engine.Quote(c, z, w, true)
				require.NoError(t, err)

				// round half up of base*1.05 in cents
				want := (plain.Total().Minor()*105 + 50) / 100
				assert.Equal(t, want, insured.Total().Minor(), "%s/%s/%v", c, z, w)
			}
		}
	}
}

func TestPricingEngine_SplitInvariant(t *testing.T) {
	engine := newEngine(t)

	for _, c := range parcel.Categories() {
		for _, z := range parcel.Zones() {
			for _, w := range []float64{0, 4.5, 9, 19.99, 30} {
				for _, insured := range []bool{false, true} {
					p, err := engine.Quote(c, z, w, insured)
					require.NoError(t, err)

					assert.Equal(t, p.Total(), p.CourierShare().Add(p.PlatformShare()))
					assert.False(t, p.PlatformShare().IsNegative())
				}
			}
		}
	}
}

func TestPricingEngine_Deterministic(t *testing.T) {
	engine := newEngine(t)
	first, err := engine.Quote(parcel.CategoryValuable, parcel.ZoneInternational, 12.5, true)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			again, err := engine.Quote(parcel.CategoryValuable, parcel.ZoneInternational, 12.5, true)
			assert.NoError(t, err)
			assert.Equal(t, first, again)
		}()
	}
	wg.Wait()
}

func TestPricingEngine_Miss(t *testing.T) {
	engine := newEngine(t)
	tests := []struct {
		name     string
		category parcel.Category
		zone     parcel.Zone
		weight   float64
	}{
		{name: "over the heaviest tier", category: parcel.CategoryStandard, zone: parcel.ZoneUrban, weight: 30.5},
		{name: "negative weight", category: parcel.CategoryStandard, zone: parcel.ZoneUrban, weight: -1},
		{name: "unknown zone", category: parcel.CategoryStandard, zone: parcel.ZoneUnknown, weight: 2},
		{name: "unknown category", category: parcel.CategoryUnknown, zone: parcel.ZoneUrban, weight: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := engine.Quote(tt.category, tt.zone, tt.weight, false)

			require.Error(t, err)
			assert.ErrorIs(t, err, services.ErrTariffNotFound)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.True(t, p.Total().IsZero())
		})
	}

	assert.InDelta(t, 30.0, engine.MaxWeightKg(), 1e-9)
}
