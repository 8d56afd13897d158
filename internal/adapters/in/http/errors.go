package http

import (
	"errors"
	"log/slog"
	"net/http"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/tenant"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse lists the failed fields and why they failed.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// NewErrorHandler maps use-case errors onto status codes. Handlers return errors
// unchanged and let this function pick the response.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := classify(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.WarnContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}

func classify(err error) (int, any) {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		return httpErr.Code, ErrorResponse{Message: message}
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: err.Error()}
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: errs.FieldErrors(err)}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ErrorResponse{Message: err.Error()}
	case errors.Is(err, errs.ErrAlreadyResolved):
		return http.StatusConflict, ErrorResponse{Message: err.Error()}
	case errors.Is(err, queries.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{Message: err.Error()}
	case errors.Is(err, errs.ErrNotADriver),
		errors.Is(err, errs.ErrUnauthorized),
		errors.Is(err, errs.ErrOperationForbidden):
		return http.StatusForbidden, ErrorResponse{Message: err.Error()}
	case errors.Is(err, tenant.ErrNoTenant):
		return http.StatusForbidden, ErrorResponse{Message: "unknown client domain"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Message: internalErrorMessage}
	}
}
