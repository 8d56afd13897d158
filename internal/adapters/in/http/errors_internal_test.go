package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/tenant"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "echo error keeps its code", err: echo.NewHTTPError(http.StatusBadRequest, "bad json"), status: http.StatusBadRequest},
		{name: "validation", err: errs.NewValueIsRequiredError("request"), status: http.StatusUnprocessableEntity},
		{name: "transition", err: errs.NewInvalidTransitionError("delivered", "pending"), status: http.StatusUnprocessableEntity},
		{name: "not found", err: errs.NewObjectNotFoundError("order", "42"), status: http.StatusNotFound},
		{name: "already resolved", err: errs.NewAlreadyResolvedError("42", "accepted"), status: http.StatusConflict},
		{name: "not a driver", err: errs.NewNotADriverError("7"), status: http.StatusForbidden},
		{name: "unauthorized", err: errs.NewUnauthorizedError("reject order", "not assigned"), status: http.StatusForbidden},
		{name: "forbidden", err: errs.NewOperationForbiddenError("delete order", "delivered"), status: http.StatusForbidden},
		{name: "credentials", err: queries.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{name: "no tenant", err: tenant.ErrNoTenant, status: http.StatusForbidden},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", errs.NewObjectNotFoundError("order", "42")), status: http.StatusNotFound},
		{name: "persistence", err: errs.NewPersistenceError("update order", errors.New("deadlock")), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := classify(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestClassify_ValidationBodyListsEveryField(t *testing.T) {
	err := errors.Join(errs.NewValueIsRequiredError("client_phone"), errs.NewValueIsRequiredError("request"))

	_, body := classify(err)

	assert.Equal(t, ValidationErrorResponse{Errors: map[string]string{
		"client_phone": errs.ErrValueIsRequired.Error(),
		"request":      errs.ErrValueIsRequired.Error(),
	}}, body)
}
