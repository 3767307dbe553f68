package commands_test

import (
	"context"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Delete(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetActiveByCourier(ctx context.Context, id kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ExistsByReference(ctx context.Context, ref parcel.Reference) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

type MockParcelUoW struct{ mock.Mock }

func (m *MockParcelUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockParcelUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockParcelUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockParcelUoW) ParcelRepository() ports.ParcelRepository {
	return m.Called().Get(0).(ports.ParcelRepository)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	return m.Called().Get(0).(commands.ParcelUoW)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

type MockOutboxUoW struct{ mock.Mock }

func (m *MockOutboxUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockOutboxUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockOutboxUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}

type MockGeoLookup struct{ mock.Mock }

func (m *MockGeoLookup) SenderLocation(ctx context.Context, id kernel.UUID) (kernel.GeoPoint, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(kernel.GeoPoint), args.Bool(1), args.Error(2)
}

func (m *MockGeoLookup) CourierLocation(ctx context.Context, id kernel.UUID) (kernel.GeoPoint, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(kernel.GeoPoint), args.Bool(1), args.Error(2)
}

type MockLocationRegistry struct{ mock.Mock }

func (m *MockLocationRegistry) SetLocation(
	ctx context.Context, role ports.PartyRole, id kernel.UUID, point kernel.GeoPoint, at time.Time,
) error {
	return m.Called(ctx, role, id, point, at).Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	return m.Called(ctx, messages).Error(0)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) TariffMissed(c parcel.Category, z parcel.Zone) { m.Called(c, z) }
func (m *MockObserver) StatusChanged(from, to parcel.Status, err error) {
	m.Called(from, to, err)
}
func (m *MockObserver) OutboxPublished(count int) { m.Called(count) }

// fixedReferences hands out the given references in order.
type fixedReferences struct {
	refs []string
	next int
}

func (f *fixedReferences) Next() (parcel.Reference, error) {
	ref := f.refs[f.next%len(f.refs)]
	f.next++
	return parcel.NewReference(ref)
}

var fixedNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func mustEngine() *services.PricingEngine {
	engine, err := services.NewPricingEngine(services.DefaultTariffTable())
	if err != nil {
		panic(err)
	}
	return engine
}

// storedParcel builds a parcel as a repository would return it.
func storedParcel(mutate func(*parcel.Details)) *parcel.Parcel {
	ref, err := parcel.NewReference("COL-00C0FFEE")
	if err != nil {
		panic(err)
	}
	d := parcel.Details{
		Category:        parcel.CategoryStandard,
		Zone:            parcel.ZoneUrban,
		WeightKg:        7,
		DeliveryAddress: "Marcory Zone 4",
	}
	if mutate != nil {
		mutate(&d)
	}
	p, err := parcel.NewParcel(kernel.NewUUID(), ref, d, nil, mustEngine(), fixedNow.Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	p.ClearDomainEvents()
	return p
}

// parcelUoW wires a factory, a unit of work and a repository mock together.
func parcelUoW() (*MockParcelUoWFactory, *MockParcelUoW, *MockParcelRepository) {
	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow, repo
}
