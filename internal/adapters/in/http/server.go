package http

import (
	"context"
	"log/slog"
	"net/http"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapitypes "github.com/oapi-codegen/runtime/types"
)

type CreateParcelHandler interface {
	Handle(ctx context.Context, cmd commands.CreateParcelCommand) error
}

type UpdateParcelHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateParcelCommand) error
}

type ChangeParcelStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeParcelStatusCommand) error
}

type RecordPaymentHandler interface {
	Handle(ctx context.Context, cmd commands.RecordPaymentCommand) error
}

type DeleteParcelHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteParcelCommand) error
}

type RegisterPartyLocationHandler interface {
	Handle(ctx context.Context, cmd commands.RegisterPartyLocationCommand) error
}

type GetParcelHandler interface {
	Handle(ctx context.Context, query queries.GetParcelQuery) (queries.ParcelView, error)
}

type ListParcelsHandler interface {
	Handle(ctx context.Context, query queries.ListParcelsQuery) ([]queries.ParcelView, error)
}

type QuoteParcelPriceHandler interface {
	Handle(ctx context.Context, query queries.QuoteParcelPriceQuery) (queries.QuoteParcelPriceQueryResponse, error)
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateParcel          CreateParcelHandler
	UpdateParcel          UpdateParcelHandler
	ChangeParcelStatus    ChangeParcelStatusHandler
	RecordPayment         RecordPaymentHandler
	DeleteParcel          DeleteParcelHandler
	RegisterPartyLocation RegisterPartyLocationHandler

	GetParcel        GetParcelHandler
	ListParcels      ListParcelsHandler
	QuoteParcelPrice QuoteParcelPriceHandler
}

// Server translates HTTP requests into commands and queries.
// Every mutating endpoint answers with the stored representation read back
// through GetParcel.
type Server struct {
	handlers Handlers
	newID    func() kernel.UUID
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		newID:    kernel.NewUUID,
		logger:   logger.With("component", "http"),
	}
}

// RegisterHandlers mounts the API routes on e.
func RegisterHandlers(e *echo.Echo, s *Server) {
	api := e.Group("/api/v1")
	api.GET("/parcels", s.ListParcels)
	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels/:id", s.GetParcel)
	api.PUT("/parcels/:id", s.UpdateParcel)
	api.DELETE("/parcels/:id", s.DeleteParcel)
	api.PATCH("/parcels/:id/status", s.PatchParcelStatus)
	api.POST("/parcels/:id/payment", s.RecordPayment)
	api.POST("/tariffs/quote", s.QuoteParcelPrice)
	api.PUT("/senders/:id/location", s.SetSenderLocation)
	api.PUT("/couriers/:id/location", s.SetCourierLocation)
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(c echo.Context) error {
	var body parcelRequest
	if err := c.Bind(&body); err != nil {
		return s.fail(c, err)
	}
	details, err := body.toDetails()
	if err != nil {
		return s.fail(c, err)
	}

	id := s.newID()
	cmd, err := commands.NewCreateParcelCommand(id, details)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.CreateParcel.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondParcel(c, http.StatusCreated, id)
}

// ListParcels handles GET /api/v1/parcels?status=&courierId=.
func (s *Server) ListParcels(c echo.Context) error {
	var (
		statusName *string
		courierID  *openapitypes.UUID
	)
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &statusName); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("status", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "courierId", c.QueryParams(), &courierID); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("courierId", err))
	}

	var filter queries.ListParcelsFilter
	if statusName != nil && *statusName != "" {
		status, err := parcel.ParseStatus(*statusName)
		if err != nil {
			return s.fail(c, err)
		}
		filter.Status = &status
	}
	if courierID != nil {
		id, err := kernel.UUIDFromString(courierID.String())
		if err != nil {
			return s.fail(c, err)
		}
		filter.CourierID = &id
	}

	query, err := queries.NewListParcelsQuery(filter)
	if err != nil {
		return s.fail(c, err)
	}
	views, err := s.handlers.ListParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, newParcelResponses(views))
}

// GetParcel handles GET /api/v1/parcels/:id.
func (s *Server) GetParcel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondParcel(c, http.StatusOK, id)
}

// UpdateParcel handles PUT /api/v1/parcels/:id.
func (s *Server) UpdateParcel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body parcelRequest
	if err = c.Bind(&body); err != nil {
		return s.fail(c, err)
	}
	details, err := body.toDetails()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateParcelCommand(id, details)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.UpdateParcel.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondParcel(c, http.StatusOK, id)
}

// DeleteParcel handles DELETE /api/v1/parcels/:id.
func (s *Server) DeleteParcel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteParcelCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeleteParcel.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PatchParcelStatus handles PATCH /api/v1/parcels/:id/status?status=NAME.
func (s *Server) PatchParcelStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var statusName string
	if err = runtime.BindQueryParameter("form", true, true, "status", c.QueryParams(), &statusName); err != nil {
		return s.fail(c, errs.NewValueIsRequiredErrorWithCause("status", err))
	}

	cmd, err := commands.NewChangeParcelStatusCommand(id, statusName)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.ChangeParcelStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondParcel(c, http.StatusOK, id)
}

// RecordPayment handles POST /api/v1/parcels/:id/payment.
func (s *Server) RecordPayment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body paymentRequest
	if err = c.Bind(&body); err != nil {
		return s.fail(c, err)
	}
	update, err := body.toUpdate()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRecordPaymentCommand(id, update)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.RecordPayment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondParcel(c, http.StatusOK, id)
}

// QuoteParcelPrice handles POST /api/v1/tariffs/quote.
func (s *Server) QuoteParcelPrice(c echo.Context) error {
	var body quoteRequest
	if err := c.Bind(&body); err != nil {
		return s.fail(c, err)
	}
	category, err := parcel.ParseCategory(body.Category)
	if err != nil {
		return s.fail(c, err)
	}
	zone, err := parcel.ParseZone(body.Zone)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewQuoteParcelPriceQuery(category, zone, body.WeightKg, body.Insured)
	if err != nil {
		return s.fail(c, err)
	}
	quote, err := s.handlers.QuoteParcelPrice.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, quoteResponse{
		Total:         quote.Total,
		CourierShare:  quote.CourierShare,
		PlatformShare: quote.PlatformShare,
	})
}

// SetSenderLocation handles PUT /api/v1/senders/:id/location.
func (s *Server) SetSenderLocation(c echo.Context) error {
	return s.setLocation(c, ports.RoleSender)
}

// SetCourierLocation handles PUT /api/v1/couriers/:id/location.
func (s *Server) SetCourierLocation(c echo.Context) error {
	return s.setLocation(c, ports.RoleCourier)
}

func (s *Server) setLocation(c echo.Context, role ports.PartyRole) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body locationRequest
	if err = c.Bind(&body); err != nil {
		return s.fail(c, err)
	}
	if body.Latitude == nil || body.Longitude == nil {
		return s.fail(c, errs.NewValueIsRequiredError("latitude and longitude"))
	}
	point, err := kernel.NewGeoPoint(*body.Latitude, *body.Longitude)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRegisterPartyLocationCommand(role, id, point)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.RegisterPartyLocation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) respondParcel(c echo.Context, code int, id kernel.UUID) error {
	query, err := queries.NewGetParcelQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetParcel.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(code, newParcelResponse(view))
}

func (s *Server) fail(c echo.Context, err error) error {
	return respondError(c, s.logger, err)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	var id openapitypes.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.UUIDFromString(id.String())
}
