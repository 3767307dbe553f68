package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi/openapi.yaml
var openAPIDocument []byte

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// RequestValidator rejects requests that do not match the API description
// before they reach a handler. Routes the document does not describe
// (health, metrics, swagger) pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}
	options.WithCustomSchemaErrorFunc(schemaErrorMessage)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if isUndescribedRoute(findErr) {
				return next(c)
			}
			if findErr != nil {
				return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, findErr.Error()))
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, newErrorResponse(http.StatusBadRequest, err.Error()))
			}
			return next(c)
		}
	}, nil
}

// isUndescribedRoute reports a path or method the document does not cover. Echo
// answers those itself with 404 or 405.
func isUndescribedRoute(err error) bool {
	var routeErr *routers.RouteError
	if !errors.As(err, &routeErr) {
		return false
	}
	return routeErr.Reason == routers.ErrPathNotFound.Error() ||
		routeErr.Reason == routers.ErrMethodNotAllowed.Error()
}

// schemaErrorMessage names the failing field and the reason, without the schema dump.
// Composite schemas (allOf) report the nested failure instead of their own.
func schemaErrorMessage(err *openapi3.SchemaError) string {
	path := err.JSONPointer()
	reason := err.Reason
	var nested *openapi3.SchemaError
	if err.Origin != nil && errors.As(err.Origin, &nested) {
		path = append(path, nested.JSONPointer()...)
		reason = nested.Reason
		if reason == "" {
			reason = fmt.Sprintf("does not match schema %q", nested.SchemaField)
		}
	}
	if reason == "" {
		reason = fmt.Sprintf("does not match schema %q", err.SchemaField)
	}
	if len(path) > 0 {
		return fmt.Sprintf("%s: %s", strings.Join(path, "."), reason)
	}
	return reason
}

var registerSwaggerOnce sync.Once

// swaggerDoc serves the API description to the swagger UI.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

// RegisterSwaggerDoc publishes doc under swag's default instance name, which is
// what echo-swagger reads. Only the first call has an effect.
func RegisterSwaggerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	registerSwaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}
