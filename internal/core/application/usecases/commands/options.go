package commands

import (
	"log/slog"
	"time"

	"parcels/internal/core/domain/model/parcel"
)

// Observer receives use case outcomes worth counting.
type Observer interface {
	TariffMissed(category parcel.Category, zone parcel.Zone)
	StatusChanged(from, to parcel.Status, err error)
	OutboxPublished(count int)
}

// NopObserver discards every outcome.
type NopObserver struct{}

func (NopObserver) TariffMissed(parcel.Category, parcel.Zone)      {}
func (NopObserver) StatusChanged(parcel.Status, parcel.Status, error) {}
func (NopObserver) OutboxPublished(int)                              {}

// Option customizes a command handler.
type Option func(*options)

type options struct {
	clock    func() time.Time
	logger   *slog.Logger
	observer Observer
}

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func newOptions(component string, opts []Option) options {
	o := options{
		clock:    time.Now,
		logger:   slog.Default(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("component", component)
	return o
}
