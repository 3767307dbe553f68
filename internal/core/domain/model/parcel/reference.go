package parcel

import (
	"crypto/rand"
	"fmt"
	"io"
	"regexp"
	"strings"

	"parcels/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	referencePrefix    = "COL-"
	referenceHexLength = 8
)

var referencePattern = regexp.MustCompile(`^COL-[0-9A-F]{8}$`)

// Reference is the externally visible parcel identifier, e.g. "COL-3F9A0B1C".
// It is immutable once assigned.
type Reference struct {
	value string
}

// NewReference validates the COL-XXXXXXXX form.
func NewReference(value string) (Reference, error) {
	if value == "" {
		return Reference{}, errs.NewValueIsRequiredError("reference")
	}
	if !referencePattern.MatchString(value) {
		return Reference{}, errs.NewValueIsInvalidErrorWithCause("reference",
			fmt.Errorf("%q does not match %s", value, referencePattern))
	}
	return Reference{value: value}, nil
}

func (r Reference) String() string {
	return r.value
}

func (r Reference) IsZero() bool {
	return r.value == ""
}

func (r Reference) Validate() error {
	if r.IsZero() {
		return errs.NewValueIsRequiredError("reference")
	}
	return nil
}

// ReferenceGenerator produces candidate references. Uniqueness is checked by the caller.
type ReferenceGenerator interface {
	Next() (Reference, error)
}

// RandomReferenceGenerator derives references from random UUIDs read from an io.Reader.
type RandomReferenceGenerator struct {
	source io.Reader
}

// NewRandomReferenceGenerator uses source for randomness, or crypto/rand when source is nil.
// The source must be safe for concurrent reads if the generator is shared.
func NewRandomReferenceGenerator(source io.Reader) *RandomReferenceGenerator {
	if source == nil {
		source = rand.Reader
	}
	return &RandomReferenceGenerator{source: source}
}

// Next keeps the first eight hex digits of a random UUID, uppercased.
func (g *RandomReferenceGenerator) Next() (Reference, error) {
	id, err := uuid.NewRandomFromReader(g.source)
	if err != nil {
		return Reference{}, fmt.Errorf("read random reference: %w", err)
	}
	hex := strings.ReplaceAll(id.String(), "-", "")
	return NewReference(referencePrefix + strings.ToUpper(hex[:referenceHexLength]))
}
