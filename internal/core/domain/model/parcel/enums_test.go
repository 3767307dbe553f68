package parcel_test

import (
	"encoding/json"
	"testing"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZone(t *testing.T) {
	tests := []struct {
		input string
		want  parcel.Zone
	}{
		{input: "URBAN", want: parcel.ZoneUrban},
		{input: "interurban", want: parcel.ZoneInterurban},
		{input: "International", want: parcel.ZoneInternational},
		{input: "Urbain", want: parcel.ZoneUrban},
		{input: "Interurbain", want: parcel.ZoneInterurban},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			z, err := parcel.ParseZone(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, z)
		})
	}

	t.Run("should reject a city name", func(t *testing.T) {
		_, err := parcel.ParseZone("Abidjan")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseCategory(t *testing.T) {
	c, err := parcel.ParseCategory("valuable")
	require.NoError(t, err)
	assert.Equal(t, parcel.CategoryValuable, c)

	_, err = parcel.ParseCategory("FRAGILE")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Len(t, parcel.Categories(), 3)
	assert.Len(t, parcel.Zones(), 3)
}

func TestPaymentEnums(t *testing.T) {
	m, err := parcel.ParsePaymentMethod("MOBILE_MONEY")
	require.NoError(t, err)
	assert.Equal(t, parcel.PaymentMethodMobileMoney, m)
	assert.True(t, m.IsSet())
	assert.False(t, parcel.PaymentMethodUnknown.IsSet())

	s, err := parcel.ParsePaymentStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, parcel.PaymentStatusPaid, s)

	_, err = parcel.ParsePaymentStatus("LATE")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestEnums_JSONByName(t *testing.T) {
	type wire struct {
		Category      parcel.Category      `json:"category"`
		Zone          parcel.Zone          `json:"zone"`
		Status        parcel.Status        `json:"status"`
		PaymentMethod parcel.PaymentMethod `json:"paymentMethod"`
		PaymentStatus parcel.PaymentStatus `json:"paymentStatus"`
	}
	in := wire{
		Category:      parcel.CategoryBulky,
		Zone:          parcel.ZoneInternational,
		Status:        parcel.StatusInTransit,
		PaymentMethod: parcel.PaymentMethodCard,
		PaymentStatus: parcel.PaymentStatusRefunded,
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"BULKY","zone":"INTERNATIONAL","status":"IN_TRANSIT",`+
		`"paymentMethod":"CARD","paymentStatus":"REFUNDED"}`, string(data))

	var out wire
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
