package services

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// maxTariffPrice keeps surcharge and share arithmetic far from int64 overflow.
var maxTariffPrice = kernel.MoneyFromMajor(1_000_000_000_000)

// TariffTable holds one base price per (category, zone, weight tier).
// Tier bounds are inclusive upper limits in kilograms.
type TariffTable struct {
	tiers  []float64
	prices map[parcel.Category]map[parcel.Zone][]kernel.Money
}

// DefaultTariffTable returns the built-in tariff grid.
func DefaultTariffTable() TariffTable {
	return TariffTable{
		tiers: []float64{5, 10, 20, 30},
		prices: map[parcel.Category]map[parcel.Zone][]kernel.Money{
			parcel.CategoryStandard: {
				parcel.ZoneUrban:         majors(3000, 4500, 7500, 11000),
				parcel.ZoneInterurban:    majors(7500, 10000, 15000, 20000),
				parcel.ZoneInternational: majors(34650, 66300, 130600, 196000),
			},
			parcel.CategoryValuable: {
				parcel.ZoneUrban:         majors(4000, 6000, 9500, 14000),
				parcel.ZoneInterurban:    majors(8000, 12000, 18000, 25000),
				parcel.ZoneInternational: majors(36382, 69615, 137130, 205800),
			},
			parcel.CategoryBulky: {
				parcel.ZoneUrban:         majors(8000, 12000, 18000, 26000),
				parcel.ZoneInterurban:    majors(15000, 20000, 30000, 40000),
				parcel.ZoneInternational: majors(65000, 100000, 150000, 250000),
			},
		},
	}
}

func majors(amounts ...int64) []kernel.Money {
	out := make([]kernel.Money, len(amounts))
	for i, a := range amounts {
		out[i] = kernel.MoneyFromMajor(a)
	}
	return out
}

// Lookup returns the base price of the first tier whose bound is >= weightKg.
func (t TariffTable) Lookup(category parcel.Category, zone parcel.Zone, weightKg float64) (kernel.Money, bool) {
	if weightKg < 0 || math.IsNaN(weightKg) {
		return kernel.Money{}, false
	}
	row, ok := t.prices[category][zone]
	if !ok {
		return kernel.Money{}, false
	}
	for i, bound := range t.tiers {
		if weightKg <= bound {
			return row[i], true
		}
	}
	return kernel.Money{}, false
}

// MaxWeightKg is the heaviest weight the table prices.
func (t TariffTable) MaxWeightKg() float64 {
	if len(t.tiers) == 0 {
		return 0
	}
	return t.tiers[len(t.tiers)-1]
}

// Validate checks that every category and zone has one non-negative price per
// tier and that tier bounds are positive and strictly increasing.
func (t TariffTable) Validate() error {
	if len(t.tiers) == 0 {
		return errs.NewValueIsRequiredError("tariff tiers")
	}
	var errList []error
	for i, bound := range t.tiers {
		if bound <= 0 || (i > 0 && bound <= t.tiers[i-1]) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("tariff tiers",
				fmt.Errorf("bound %v at position %d is not positive and increasing", bound, i)))
		}
	}
	for _, c := range parcel.Categories() {
		for _, z := range parcel.Zones() {
			row, ok := t.prices[c][z]
			if !ok {
				errList = append(errList, errs.NewValueIsRequiredError(fmt.Sprintf("tariff %s/%s", c, z)))
				continue
			}
			if len(row) != len(t.tiers) {
				errList = append(errList, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("tariff %s/%s", c, z),
					fmt.Errorf("has %d prices for %d tiers", len(row), len(t.tiers))))
			}
			for _, price := range row {
				if price.IsNegative() || price.Minor() > maxTariffPrice.Minor() {
					errList = append(errList, errs.NewValueIsOutOfRangeError(fmt.Sprintf("tariff %s/%s", c, z),
						price, kernel.Money{}, maxTariffPrice))
				}
			}
		}
	}
	return errors.Join(errList...)
}

// tariffFile is the YAML layout of a tariff override:
//
//	tiers: [5, 10, 20, 30]
//	prices:
//	  STANDARD:
//	    URBAN: [3000, 4500, 7500, 11000]
type tariffFile struct {
	Tiers  []float64                       `yaml:"tiers"`
	Prices map[string]map[string][]float64 `yaml:"prices"`
}

// LoadTariffTable decodes and validates a YAML tariff table.
func LoadTariffTable(r io.Reader) (TariffTable, error) {
	var file tariffFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return TariffTable{}, fmt.Errorf("decode tariff table: %w", err)
	}

	table := TariffTable{
		tiers:  file.Tiers,
		prices: make(map[parcel.Category]map[parcel.Zone][]kernel.Money, len(file.Prices)),
	}
	for categoryName, zones := range file.Prices {
		category, err := parcel.ParseCategory(categoryName)
		if err != nil {
			return TariffTable{}, err
		}
		table.prices[category] = make(map[parcel.Zone][]kernel.Money, len(zones))
		for zoneName, amounts := range zones {
			zone, err := parcel.ParseZone(zoneName)
			if err != nil {
				return TariffTable{}, err
			}
			row := make([]kernel.Money, len(amounts))
			for i, amount := range amounts {
				if row[i], err = kernel.MoneyFromFloat(amount); err != nil {
					return TariffTable{}, err
				}
			}
			table.prices[category][zone] = row
		}
	}

	if err := table.Validate(); err != nil {
		return TariffTable{}, err
	}
	return table, nil
}

// LoadTariffFile reads a YAML tariff table from path.
func LoadTariffFile(path string) (TariffTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return TariffTable{}, fmt.Errorf("open tariff file: %w", err)
	}
	defer f.Close()

	return LoadTariffTable(f)
}
