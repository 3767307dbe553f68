package services_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) SenderLocation(ctx context.Context, id kernel.UUID) (kernel.GeoPoint, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(kernel.GeoPoint), args.Bool(1), args.Error(2)
}

func (m *MockLocator) CourierLocation(ctx context.Context, id kernel.UUID) (kernel.GeoPoint, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(kernel.GeoPoint), args.Bool(1), args.Error(2)
}

type MockWorkload struct {
	mock.Mock
}

func (m *MockWorkload) GetActiveByCourier(ctx context.Context, id kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

var lifecycleNow = time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)

type lifecycleFixture struct {
	locator   *MockLocator
	workload  *MockWorkload
	lifecycle *services.ParcelLifecycle
	logs      *bytes.Buffer
}

func newLifecycleFixture(t *testing.T) lifecycleFixture {
	t.Helper()
	logs := &bytes.Buffer{}
	locator := &MockLocator{}
	lifecycle, err := services.NewParcelLifecycle(locator,
		func() time.Time { return lifecycleNow },
		slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	require.NoError(t, err)
	return lifecycleFixture{locator: locator, workload: &MockWorkload{}, lifecycle: lifecycle, logs: logs}
}

func newLifecycleParcel(t *testing.T, senderID, courierID *kernel.UUID) *parcel.Parcel {
	t.Helper()
	ref, err := parcel.NewRandomReferenceGenerator(nil).Next()
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), ref, parcel.Details{
		Category:  parcel.CategoryStandard,
		Zone:      parcel.ZoneUrban,
		WeightKg:  3,
		SenderID:  senderID,
		CourierID: courierID,
	}, nil, newEngine(t), lifecycleNow.Add(-time.Hour))
	require.NoError(t, err)
	return p
}

func point(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func TestNewParcelLifecycle(t *testing.T) {
	_, err := services.NewParcelLifecycle(nil, nil, nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	l, err := services.NewParcelLifecycle(&MockLocator{}, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestParcelLifecycle_Pending(t *testing.T) {
	ctx := context.Background()

	t.Run("should stamp the sender position once", func(t *testing.T) {
		f := newLifecycleFixture(t)
		sender := kernel.NewUUID()
		p := newLifecycleParcel(t, &sender, nil)
		f.locator.On("SenderLocation", ctx, sender).Return(point(t, 5.36, -4.008), true, nil).Once()

		require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusPending, f.workload))
		require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusPending, f.workload))

		assert.Equal(t, "5.360000,-4.008000", p.GPS().String())
		f.locator.AssertExpectations(t)
	})

	t.Run("should skip the snapshot when the lookup fails", func(t *testing.T) {
		f := newLifecycleFixture(t)
		sender := kernel.NewUUID()
		p := newLifecycleParcel(t, &sender, nil)
		f.locator.On("SenderLocation", ctx, sender).Return(kernel.GeoPoint{}, false, errors.New("redis down"))

		require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusPending, f.workload))

		assert.Nil(t, p.GPS())
		assert.Equal(t, parcel.StatusPending, p.Status())
		assert.Contains(t, f.logs.String(), "level=WARN")
		assert.Contains(t, f.logs.String(), "redis down")
	})

	t.Run("should not look up a parcel without sender", func(t *testing.T) {
		f := newLifecycleFixture(t)
		p := newLifecycleParcel(t, nil, nil)

		require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusPending, f.workload))

		f.locator.AssertNotCalled(t, "SenderLocation", mock.Anything, mock.Anything)
	})
}

func TestParcelLifecycle_PickUp(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail without courier before any lookup", func(t *testing.T) {
		f := newLifecycleFixture(t)
		p := newLifecycleParcel(t, nil, nil)

		err := f.lifecycle.Apply(ctx, p, parcel.StatusPickedUp, f.workload)

		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Equal(t, parcel.StatusPending, p.Status())
		f.workload.AssertNotCalled(t, "GetActiveByCourier", mock.Anything, mock.Anything)
	})

	t.Run("should reject a courier that already carries a parcel", func(t *testing.T) {
		f := newLifecycleFixture(t)
		courier := kernel.NewUUID()
		busy := newLifecycleParcel(t, nil, &courier)
		require.NoError(t, busy.PickUp(nil, lifecycleNow))
		p := newLifecycleParcel(t, nil, &courier)
		f.workload.On("GetActiveByCourier", ctx, courier).Return([]*parcel.Parcel{busy}, nil)

		err := f.lifecycle.Apply(ctx, p, parcel.StatusPickedUp, f.workload)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), busy.Reference().String())
		assert.Equal(t, parcel.StatusPending, p.Status())
		f.locator.AssertNotCalled(t, "CourierLocation", mock.Anything, mock.Anything)
	})

	t.Run("should ignore the parcel itself in the courier workload", func(t *testing.T) {
		f := newLifecycleFixture(t)
		courier := kernel.NewUUID()
		p := newLifecycleParcel(t, nil, &courier)
		f.workload.On("GetActiveByCourier", ctx, courier).Return([]*parcel.Parcel{p}, nil)
		f.locator.On("CourierLocation", ctx, courier).Return(point(t, 5.3, -4.0), true, nil)

		require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusPickedUp, f.workload))

		assert.Equal(t, parcel.StatusPickedUp, p.Status())
	})

	t.Run("should stamp the courier position and pickup time", func(t *testing.T) {
		f := newLifecycleFixture(t)
		courier := kernel.NewUUID()
		p := newLifecycleParcel(t, nil, &courier)
		f.workload.On("GetActiveByCourier", ctx, courier).Return([]*parcel.Parcel{}, nil)
		f.locator.On("CourierLocation", ctx, courier).Return(point(t, 5.31, -4.02), true, nil)

		require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusPickedUp, f.workload))

		assert.Equal(t, "5.310000,-4.020000", p.GPS().String())
		assert.Equal(t, lifecycleNow, *p.PickedUpAt())
		mock.AssertExpectationsForObjects(t, f.workload, f.locator)
	})

	t.Run("should succeed when the courier position is unknown", func(t *testing.T) {
		f := newLifecycleFixture(t)
		courier := kernel.NewUUID()
		p := newLifecycleParcel(t, nil, &courier)
		f.workload.On("GetActiveByCourier", ctx, courier).Return(nil, nil)
		f.locator.On("CourierLocation", ctx, courier).Return(kernel.GeoPoint{}, false, nil)

		require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusPickedUp, f.workload))

		assert.Nil(t, p.GPS())
		assert.Equal(t, parcel.StatusPickedUp, p.Status())
	})

	t.Run("should surface storage errors from the workload", func(t *testing.T) {
		f := newLifecycleFixture(t)
		courier := kernel.NewUUID()
		p := newLifecycleParcel(t, nil, &courier)
		f.workload.On("GetActiveByCourier", ctx, courier).Return(nil, errors.New("connection reset"))

		err := f.lifecycle.Apply(ctx, p, parcel.StatusPickedUp, f.workload)

		assert.ErrorContains(t, err, "connection reset")
		assert.Equal(t, parcel.StatusPending, p.Status())
	})
}

func TestParcelLifecycle_TransitAndDelivery(t *testing.T) {
	ctx := context.Background()
	f := newLifecycleFixture(t)
	courier := kernel.NewUUID()
	p := newLifecycleParcel(t, nil, &courier)
	f.workload.On("GetActiveByCourier", ctx, courier).Return(nil, nil)
	f.locator.On("CourierLocation", ctx, courier).Return(point(t, 5.3, -4.0), true, nil).Once()
	f.locator.On("CourierLocation", ctx, courier).Return(point(t, 5.8, -4.4), true, nil).Once()

	require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusPickedUp, f.workload))
	require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusInTransit, f.workload))
	assert.Equal(t, "5.800000,-4.400000", p.GPS().String())

	require.NoError(t, f.lifecycle.Apply(ctx, p, parcel.StatusDelivered, f.workload))
	assert.Equal(t, "5.800000,-4.400000", p.GPS().String(), "delivery keeps the last position")
	assert.Equal(t, lifecycleNow, *p.ActualDeliveryAt())

	err := f.lifecycle.Apply(ctx, p, parcel.StatusCancelled, f.workload)
	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Equal(t, parcel.StatusDelivered, p.Status())
	f.locator.AssertExpectations(t)
}

func TestParcelLifecycle_InvalidTarget(t *testing.T) {
	f := newLifecycleFixture(t)
	sender := kernel.NewUUID()
	p := newLifecycleParcel(t, &sender, nil)

	err := f.lifecycle.Apply(context.Background(), p, parcel.StatusUnknown, f.workload)

	assert.ErrorIs(t, err, errs.ErrStatusIsInvalid)
	assert.Equal(t, parcel.StatusPending, p.Status())
	f.locator.AssertNotCalled(t, "SenderLocation", mock.Anything, mock.Anything)
}

func TestParcelLifecycle_Cancel(t *testing.T) {
	f := newLifecycleFixture(t)
	p := newLifecycleParcel(t, nil, nil)

	require.NoError(t, f.lifecycle.Apply(context.Background(), p, parcel.StatusCancelled, f.workload))

	assert.Equal(t, parcel.StatusCancelled, p.Status())
	assert.Nil(t, p.GPS())
}
