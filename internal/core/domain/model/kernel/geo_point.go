package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// geoPointPrecision is the number of decimal digits kept in the text form.
	geoPointPrecision = 6
)

// ErrGeoPointIsNotConstructed is returned by Validate for a zero GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint or ParseGeoPoint")

// GeoPoint is a WGS84 latitude/longitude pair.
//
// Its text form is "<lat>,<lon>" with six decimal digits and a '.' decimal
// separator regardless of the process locale, e.g. "5.348000,-4.027000".
type GeoPoint struct {
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates the coordinate ranges and builds a GeoPoint.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}
	if err := errors.Join(p.setLat(lat), p.setLon(lon)); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// ParseGeoPoint reads the "<lat>,<lon>" text form produced by String.
func ParseGeoPoint(s string) (GeoPoint, error) {
	latText, lonText, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("geo point",
			fmt.Errorf("%q is not in <lat>,<lon> form", s))
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("latitude", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
	if err != nil {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("longitude", err)
	}
	return NewGeoPoint(lat, lon)
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

func (p GeoPoint) Lon() float64 {
	return p.lon
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.String() == other.String()
}

// String formats the point with strconv, which never consults the locale.
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.lat, 'f', geoPointPrecision, 64) + "," +
		strconv.FormatFloat(p.lon, 'f', geoPointPrecision, 64)
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax || lat != lat {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLon(lon float64) error {
	if lon < LongitudeMin || lon > LongitudeMax || lon != lon {
		return errs.NewValueIsOutOfRangeError("longitude", lon, LongitudeMin, LongitudeMax)
	}
	p.lon = lon
	return nil
}
