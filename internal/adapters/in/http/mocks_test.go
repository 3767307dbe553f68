package http

import (
	"context"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockCreateParcelHandler struct{ mock.Mock }

func (m *MockCreateParcelHandler) Handle(ctx context.Context, cmd commands.CreateParcelCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockUpdateParcelHandler struct{ mock.Mock }

func (m *MockUpdateParcelHandler) Handle(ctx context.Context, cmd commands.UpdateParcelCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockChangeParcelStatusHandler struct{ mock.Mock }

func (m *MockChangeParcelStatusHandler) Handle(ctx context.Context, cmd commands.ChangeParcelStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockRecordPaymentHandler struct{ mock.Mock }

func (m *MockRecordPaymentHandler) Handle(ctx context.Context, cmd commands.RecordPaymentCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockDeleteParcelHandler struct{ mock.Mock }

func (m *MockDeleteParcelHandler) Handle(ctx context.Context, cmd commands.DeleteParcelCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockRegisterPartyLocationHandler struct{ mock.Mock }

func (m *MockRegisterPartyLocationHandler) Handle(
	ctx context.Context, cmd commands.RegisterPartyLocationCommand,
) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetParcelHandler struct{ mock.Mock }

func (m *MockGetParcelHandler) Handle(ctx context.Context, query queries.GetParcelQuery) (queries.ParcelView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ParcelView), args.Error(1)
}

type MockListParcelsHandler struct{ mock.Mock }

func (m *MockListParcelsHandler) Handle(
	ctx context.Context, query queries.ListParcelsQuery,
) ([]queries.ParcelView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.ParcelView)
	return views, args.Error(1)
}

type MockQuoteParcelPriceHandler struct{ mock.Mock }

func (m *MockQuoteParcelPriceHandler) Handle(
	ctx context.Context, query queries.QuoteParcelPriceQuery,
) (queries.QuoteParcelPriceQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.QuoteParcelPriceQueryResponse), args.Error(1)
}
