package commands_test

import (
	"bytes"
	"log/slog"
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNewRecordPaymentCommand(t *testing.T) {
	_, err := commands.NewRecordPaymentCommand(kernel.NewUUID(), parcel.PaymentUpdate{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRecordPaymentCommand(kernel.NewUUID(), parcel.PaymentUpdate{
		Method: ptr(parcel.PaymentMethod(99)),
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewRecordPaymentCommand(kernel.NewUUID(), parcel.PaymentUpdate{Info: ptr("receipt 42")})
	require.NoError(t, err)
	assert.Equal(t, "receipt 42", *cmd.Update().Info)
}

func TestRecordPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := storedParcel(nil)
	total := stored.Pricing().Total()
	factory, uow, repo := parcelUoW()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once(),
		repo.On("Update", ctx, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewRecordPaymentCommand(stored.ID(), parcel.PaymentUpdate{
		Method: ptr(parcel.PaymentMethodMobileMoney),
		Status: ptr(parcel.PaymentStatusPaid),
	})
	require.NoError(t, err)

	h := commands.NewRecordPaymentCommandHandler(factory, commands.WithClock(fixedClock))
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, parcel.PaymentStatusPaid, stored.PaymentStatus())
	assert.Equal(t, parcel.PaymentMethodMobileMoney, stored.Details().PaymentMethod)
	assert.Equal(t, total, stored.Pricing().Total())
	mock.AssertExpectationsForObjects(t, factory, uow, repo)
}

func TestRecordPaymentCommandHandler_Handle_RevertedPaymentIsLogged(t *testing.T) {
	ctx := t.Context()
	stored := storedParcel(nil)
	require.NoError(t, stored.RecordPayment(parcel.PaymentUpdate{Status: ptr(parcel.PaymentStatusPaid)}, fixedNow))
	require.NoError(t, stored.StartTransit(nil, fixedNow))
	require.NoError(t, stored.Deliver(fixedNow))
	stored.ClearDomainEvents()

	logs := &bytes.Buffer{}
	factory, uow, repo := parcelUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, stored.ID()).Return(stored, nil).Once()
	repo.On("Update", ctx, stored).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRecordPaymentCommand(stored.ID(), parcel.PaymentUpdate{
		Status: ptr(parcel.PaymentStatusRefunded),
	})
	require.NoError(t, err)

	h := commands.NewRecordPaymentCommandHandler(factory,
		commands.WithLogger(slog.New(slog.NewTextHandler(logs, nil))))
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, parcel.PaymentStatusRefunded, stored.PaymentStatus())
	assert.Contains(t, logs.String(), "payment of a delivered parcel moved away from PAID")
	assert.Contains(t, logs.String(), "payment_status=REFUNDED")
}
