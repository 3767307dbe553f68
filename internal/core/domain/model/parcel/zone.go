package parcel

import (
	"fmt"
	"strings"

	"parcels/internal/pkg/errs"
)

// Zone is the shipping distance classifier that selects a tariff row.
type Zone int

const (
	ZoneUnknown Zone = iota
	ZoneUrban
	ZoneInterurban
	ZoneInternational
)

func getZoneNames() map[Zone]string {
	//nolint:exhaustive // ZoneUnknown has no wire name
	return map[Zone]string{
		ZoneUrban:         "URBAN",
		ZoneInterurban:    "INTERURBAN",
		ZoneInternational: "INTERNATIONAL",
	}
}

// getLegacyZoneLabels maps the labels older clients wrote into the destination city.
func getLegacyZoneLabels() map[string]Zone {
	return map[string]Zone{
		"URBAIN":      ZoneUrban,
		"INTERURBAIN": ZoneInterurban,
	}
}

// Zones returns every valid zone in declaration order.
func Zones() []Zone {
	return []Zone{ZoneUrban, ZoneInterurban, ZoneInternational}
}

// ParseZone resolves a zone by name, case-insensitively. The legacy labels
// "Urbain", "Interurbain" and "International" are accepted as well.
func ParseZone(name string) (Zone, error) {
	if z, ok := parseName(getZoneNames(), name); ok {
		return z, nil
	}
	if z, ok := getLegacyZoneLabels()[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return z, nil
	}
	return ZoneUnknown, errs.NewValueIsInvalidErrorWithCause("zone",
		fmt.Errorf("%q is not one of URBAN, INTERURBAN, INTERNATIONAL", name))
}

func (z Zone) Validate() error {
	if _, ok := getZoneNames()[z]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("zone", fmt.Errorf("%d is not a valid zone", z))
	}
	return nil
}

func (z Zone) String() string {
	if name, ok := getZoneNames()[z]; ok {
		return name
	}
	return "UNKNOWN"
}

func (z Zone) MarshalText() ([]byte, error) {
	if err := z.Validate(); err != nil {
		return nil, err
	}
	return []byte(z.String()), nil
}

func (z *Zone) UnmarshalText(text []byte) error {
	parsed, err := ParseZone(string(text))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}
