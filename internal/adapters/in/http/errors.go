package http

import (
	"errors"
	"log/slog"
	"net/http"

	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusCode maps core errors to HTTP status codes. The tariff check comes
// first because a tariff miss also matches errs.ErrValueIsOutOfRange.
func statusCode(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, services.ErrTariffNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusPreconditionFailed
	case errors.Is(err, errs.ErrStatusIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error. Internal errors are logged and
// replaced by a generic message.
func respondError(c echo.Context, logger *slog.Logger, err error) error {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(code, newErrorResponse(code, http.StatusText(code)))
	}

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	}
	return c.JSON(code, newErrorResponse(code, message))
}
