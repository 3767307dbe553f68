package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

// Metrics instruments requests and serves the collected series.
type Metrics interface {
	Middleware() echo.MiddlewareFunc
	Handler() http.Handler
}

type RouterConfig struct {
	Server  *Server
	Metrics Metrics
	// RateLimitRPS caps requests per second per client IP. Zero disables the limit.
	RateLimitRPS float64
	Debug        bool
}

// NewRouter builds the echo instance with the API, ops endpoints and the
// request validation middleware.
func NewRouter(ctx context.Context, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	if cfg.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.WARN)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
	}
	if cfg.RateLimitRPS > 0 {
		store := middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS))
		e.Use(middleware.RateLimiter(store))
	}
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, cfg.Server)
	return e, nil
}
