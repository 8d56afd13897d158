package http

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"logistics/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

var registerDocsOnce sync.Once

// OpenAPI is the loaded API description. It validates incoming requests and is
// served as the swagger document.
type OpenAPI struct {
	router routers.Router
	json   string
}

// LoadOpenAPI parses and validates an OpenAPI 3 document.
func LoadOpenAPI(ctx context.Context, data []byte) (*OpenAPI, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}

	return &OpenAPI{router: router, json: string(raw)}, nil
}

// ReadDoc implements swag.Swagger.
func (o *OpenAPI) ReadDoc() string {
	return o.json
}

// RegisterDocs makes the document available to the swagger UI. Only the first
// registration in a process takes effect.
func (o *OpenAPI) RegisterDocs() {
	registerDocsOnce.Do(func() {
		swag.Register(swag.Name, o)
	})
}

// Validator rejects requests that do not match the document. Routes the document
// does not describe, such as /health, pass through untouched.
func (o *OpenAPI) Validator() echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := o.router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return schemaViolations(err)
			}
			return next(c)
		}
	}
}

// schemaViolations turns validator output into field errors so they are rendered
// like the ones raised by commands.
func schemaViolations(err error) error {
	var violations []error

	var walk func(err error, field string)
	walk = func(err error, field string) {
		switch e := err.(type) {
		case openapi3.MultiError:
			for _, inner := range e {
				walk(inner, field)
			}
		case *openapi3filter.RequestError:
			if e.Parameter != nil {
				field = e.Parameter.Name
			}
			if e.Err == nil {
				violations = append(violations, errs.NewValueIsInvalidErrorWithCause(field, errors.New(e.Reason)))
				return
			}
			walk(e.Err, field)
		case *openapi3.SchemaError:
			if pointer := e.JSONPointer(); len(pointer) > 0 {
				field = strings.Join(pointer, ".")
			}
			violations = append(violations, errs.NewValueIsInvalidErrorWithCause(field, errors.New(e.Reason)))
		default:
			violations = append(violations, errs.NewValueIsInvalidErrorWithCause(field, err))
		}
	}
	walk(err, "body")

	if len(violations) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return errors.Join(violations...)
}
