package parcel_test

import (
	"fmt"
	"testing"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should parse every lifecycle name", func(t *testing.T) {
		for _, name := range []string{"PENDING", "PICKED_UP", "IN_TRANSIT", "DELIVERED", "CANCELLED"} {
			s, err := parcel.ParseStatus(name)

			require.NoError(t, err)
			assert.Equal(t, name, s.String())
		}
	})

	t.Run("should ignore case and spaces", func(t *testing.T) {
		s, err := parcel.ParseStatus(" in_transit ")

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusInTransit, s)
	})

	t.Run("should reject unknown names with a typed error", func(t *testing.T) {
		_, err := parcel.ParseStatus("FOO")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrStatusIsInvalid)
		var target *errs.StatusIsInvalidError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "FOO", target.Value)
	})

	t.Run("should reject the unknown placeholder name", func(t *testing.T) {
		_, err := parcel.ParseStatus("UNKNOWN")

		assert.ErrorIs(t, err, errs.ErrStatusIsInvalid)
	})
}

func TestStatus_ValidateTransition(t *testing.T) {
	all := []parcel.Status{
		parcel.StatusPending,
		parcel.StatusPickedUp,
		parcel.StatusInTransit,
		parcel.StatusDelivered,
		parcel.StatusCancelled,
	}
	allowed := map[parcel.Status][]parcel.Status{
		parcel.StatusPending:   {parcel.StatusPending, parcel.StatusPickedUp, parcel.StatusInTransit, parcel.StatusCancelled},
		parcel.StatusPickedUp:  {parcel.StatusInTransit, parcel.StatusCancelled},
		parcel.StatusInTransit: {parcel.StatusInTransit, parcel.StatusDelivered, parcel.StatusCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				err := from.ValidateTransition(to)

				if contains(allowed[from], to) {
					assert.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
			})
		}
	}

	t.Run("should reject an invalid target before checking the graph", func(t *testing.T) {
		err := parcel.StatusDelivered.ValidateTransition(parcel.Status(42))

		assert.ErrorIs(t, err, errs.ErrStatusIsInvalid)
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	next, err := parcel.StatusPickedUp.TransitionTo(parcel.StatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, parcel.StatusInTransit, next)

	next, err = parcel.StatusCancelled.TransitionTo(parcel.StatusPending)
	require.Error(t, err)
	assert.Equal(t, parcel.StatusUnknown, next)
}

func TestStatus_Flags(t *testing.T) {
	assert.True(t, parcel.StatusPickedUp.IsActive())
	assert.True(t, parcel.StatusInTransit.IsActive())
	assert.False(t, parcel.StatusPending.IsActive())
	assert.True(t, parcel.StatusDelivered.IsTerminal())
	assert.True(t, parcel.StatusCancelled.IsTerminal())
	assert.False(t, parcel.StatusInTransit.IsTerminal())
	assert.Equal(t, []parcel.Status{parcel.StatusPickedUp, parcel.StatusInTransit}, parcel.ActiveStatuses())
}

func TestStatus_Text(t *testing.T) {
	text, err := parcel.StatusPickedUp.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "PICKED_UP", string(text))

	_, err = parcel.StatusUnknown.MarshalText()
	assert.Error(t, err)

	var s parcel.Status
	require.NoError(t, s.UnmarshalText([]byte("DELIVERED")))
	assert.Equal(t, parcel.StatusDelivered, s)
}

func contains(list []parcel.Status, s parcel.Status) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
