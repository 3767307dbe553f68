package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Category classifies a parcel for the tariff table.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryStandard
	CategoryValuable
	CategoryBulky
)

func getCategoryNames() map[Category]string {
	//nolint:exhaustive // CategoryUnknown has no wire name
	return map[Category]string{
		CategoryStandard: "STANDARD",
		CategoryValuable: "VALUABLE",
		CategoryBulky:    "BULKY",
	}
}

// Categories returns every valid category in declaration order.
func Categories() []Category {
	return []Category{CategoryStandard, CategoryValuable, CategoryBulky}
}

func ParseCategory(name string) (Category, error) {
	c, ok := parseName(getCategoryNames(), name)
	if !ok {
		return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("category",
			fmt.Errorf("%q is not one of STANDARD, VALUABLE, BULKY", name))
	}
	return c, nil
}

func (c Category) Validate() error {
	if _, ok := getCategoryNames()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

func (c Category) String() string {
	if name, ok := getCategoryNames()[c]; ok {
		return name
	}
	return "UNKNOWN"
}

func (c Category) MarshalText() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
