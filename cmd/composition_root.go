package cmd

import (
	"log/slog"

	"parcels/internal/adapters/out/postgres"
	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot builds the use case handlers from the shared infrastructure.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	engine     *services.PricingEngine
	lifecycle  *services.ParcelLifecycle
	references parcel.ReferenceGenerator
	geo        ports.GeoLookup
	locations  ports.LocationRegistry
	publisher  ports.EventPublisher

	requireKnownSender bool
	options            []commands.Option
}

// Infrastructure carries the adapters built by main.
type Infrastructure struct {
	DB        *gorm.DB
	Geo       ports.GeoLookup
	Locations ports.LocationRegistry
	Publisher ports.EventPublisher
	Observer  commands.Observer
	Logger    *slog.Logger
}

// NewCompositionRoot loads the tariff table (the built-in one unless
// TARIFF_FILE is set) and wires the domain services.
func NewCompositionRoot(cfg Config, infra Infrastructure) (*CompositionRoot, error) {
	table := services.DefaultTariffTable()
	if cfg.TariffFile != "" {
		loaded, err := services.LoadTariffFile(cfg.TariffFile)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	engine, err := services.NewPricingEngine(table)
	if err != nil {
		return nil, err
	}
	lifecycle, err := services.NewParcelLifecycle(infra.Geo, nil, infra.Logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:             infra.DB,
		uowFactory:         postgres.NewGormUnitOfWorkFactory(infra.DB),
		engine:             engine,
		lifecycle:          lifecycle,
		references:         parcel.NewRandomReferenceGenerator(nil),
		geo:                infra.Geo,
		locations:          infra.Locations,
		publisher:          infra.Publisher,
		requireKnownSender: cfg.RequireKnownSender,
		options: []commands.Option{
			commands.WithLogger(infra.Logger),
			commands.WithObserver(infra.Observer),
		},
	}, nil
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(
		c.parcelUoWFactory(), c.engine, c.references, c.geo, c.requireKnownSender, c.options...)
}

func (c *CompositionRoot) CreateUpdateParcelCommandHandler() commands.UpdateParcelCommandHandler {
	return commands.NewUpdateParcelCommandHandler(c.parcelUoWFactory(), c.engine, c.options...)
}

func (c *CompositionRoot) CreateChangeParcelStatusCommandHandler() commands.ChangeParcelStatusCommandHandler {
	return commands.NewChangeParcelStatusCommandHandler(c.parcelUoWFactory(), c.lifecycle, c.options...)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.parcelUoWFactory(), c.options...)
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	return commands.NewDeleteParcelCommandHandler(c.parcelUoWFactory(), c.options...)
}

func (c *CompositionRoot) CreateRegisterPartyLocationCommandHandler() commands.RegisterPartyLocationCommandHandler {
	return commands.NewRegisterPartyLocationCommandHandler(c.locations, c.options...)
}

func (c *CompositionRoot) CreatePublishOutboxCommandHandler() commands.PublishOutboxCommandHandler {
	return commands.NewPublishOutboxCommandHandler(c.outboxUoWFactory(), c.publisher, c.options...)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateQuoteParcelPriceQueryHandler() queries.QuoteParcelPriceQueryHandler {
	return queries.NewQuoteParcelPriceQueryHandler(c.engine)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
