// Package metrics exposes the service counters on a dedicated Prometheus registry.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "parcels"

// Status change outcomes.
const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
	outcomeConflict = "conflict"
	outcomeError    = "error"
)

var _ commands.Observer = (*Registry)(nil)

type Registry struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	statusChanges  *prometheus.CounterVec
	tariffMisses   *prometheus.CounterVec
	outboxMessages prometheus.Counter
}

// NewRegistry registers every collector, including the Go and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		statusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_changes_total",
				Help:      "Parcel status change attempts by source, target and outcome.",
			},
			[]string{"from", "to", "outcome"},
		),
		tariffMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tariff_misses_total",
				Help:      "Pricing requests with no matching tariff.",
			},
			[]string{"category", "zone"},
		),
		outboxMessages: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outbox_published_total",
				Help:      "Outbox messages handed to the broker.",
			},
		),
	}

	r.registry.MustRegister(
		r.httpRequests,
		r.httpDuration,
		r.statusChanges,
		r.tariffMisses,
		r.outboxMessages,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) TariffMissed(category parcel.Category, zone parcel.Zone) {
	r.tariffMisses.WithLabelValues(category.String(), zone.String()).Inc()
}

func (r *Registry) StatusChanged(from, to parcel.Status, err error) {
	r.statusChanges.WithLabelValues(from.String(), to.String(), outcome(err)).Inc()
}

func (r *Registry) OutboxPublished(count int) {
	r.outboxMessages.Add(float64(count))
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware records every request under its route template, so /parcels/:id
// is one series rather than one per parcel.
func (r *Registry) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var httpErr *echo.HTTPError
			if err != nil && errors.As(err, &httpErr) {
				status = httpErr.Code
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			labels := []string{c.Request().Method, path, strconv.Itoa(status)}
			r.httpRequests.WithLabelValues(labels...).Inc()
			r.httpDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeApplied
	case errors.Is(err, errs.ErrPreconditionFailed), errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrStatusIsInvalid):
		return outcomeRejected
	case errors.Is(err, errs.ErrConflict):
		return outcomeConflict
	default:
		return outcomeError
	}
}
