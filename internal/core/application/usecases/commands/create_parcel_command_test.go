package commands_test

import (
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateParcelCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	details := parcel.Details{Category: parcel.CategoryBulky, Zone: parcel.ZoneInterurban, WeightKg: 12}

	cmd, err := commands.NewCreateParcelCommand(id, details)

	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.ParcelID())
	assert.Equal(t, details, cmd.Details())
}

func TestNewCreateParcelCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateParcelCommand(kernel.UUID{}, parcel.Details{WeightKg: -2})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestCreateParcelCommand_NotConstructed(t *testing.T) {
	assert.ErrorIs(t, commands.CreateParcelCommand{}.Validate(), commands.ErrCreateParcelCommandIsNotConstructed)
}
