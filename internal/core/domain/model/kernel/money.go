package kernel

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"parcels/internal/pkg/errs"
)

// MinorUnitsPerMajor is the number of minor units (hundredths) in one currency unit.
const MinorUnitsPerMajor = 100

// Money is an amount held in minor currency units so arithmetic stays exact.
// Rounding only happens in MulRatio and MoneyFromFloat, and always half away from zero.
//
// Example:
//
//	base := kernel.MoneyFromMajor(4500)
//	total := base.MulRatio(105, 100)  // 4725.00
//	courier := total.MulRatio(75, 100) // 3543.75
//	platform := total.Sub(courier)     // 1181.25
type Money struct { //nolint:recvcheck // UnmarshalJSON needs a pointer receiver
	minor int64
}

// MoneyFromMinor builds an amount from hundredths.
func MoneyFromMinor(minor int64) Money {
	return Money{minor: minor}
}

// MoneyFromMajor builds an amount from whole currency units.
func MoneyFromMajor(major int64) Money {
	return Money{minor: major * MinorUnitsPerMajor}
}

// MoneyFromFloat converts a decimal amount, rounding to the nearest hundredth.
func MoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%v is not a finite number", amount))
	}
	scaled := math.Round(amount * MinorUnitsPerMajor)
	// float64(math.MaxInt64) is 2^63, one past the largest int64.
	if scaled >= math.MaxInt64 || scaled < math.MinInt64 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount, math.MinInt64/MinorUnitsPerMajor,
			math.MaxInt64/MinorUnitsPerMajor)
	}
	return Money{minor: int64(scaled)}, nil
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) Float64() float64 {
	return float64(m.minor) / MinorUnitsPerMajor
}

func (m Money) IsZero() bool {
	return m.minor == 0
}

func (m Money) IsNegative() bool {
	return m.minor < 0
}

func (m Money) Add(other Money) Money {
	return Money{minor: m.minor + other.minor}
}

func (m Money) Sub(other Money) Money {
	return Money{minor: m.minor - other.minor}
}

// MulRatio returns m*num/den rounded half away from zero to the nearest minor unit.
// den must be positive and m*num must fit in an int64.
func (m Money) MulRatio(num, den int64) Money {
	product := m.minor * num
	half := den / 2
	if product < 0 {
		return Money{minor: (product - half) / den}
	}
	return Money{minor: (product + half) / den}
}

// String renders the amount with two decimals, e.g. "3543.75".
func (m Money) String() string {
	sign := ""
	minor := m.minor
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/MinorUnitsPerMajor, minor%MinorUnitsPerMajor)
}

// MarshalJSON emits a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if string(data) == "null" {
		return nil
	}
	amount, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	parsed, err := MoneyFromFloat(amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
