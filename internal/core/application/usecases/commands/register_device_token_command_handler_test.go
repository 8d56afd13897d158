package commands_test

import (
	"strings"
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDeviceTokenCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := NewMockUoW()
	handler := commands.NewRegisterDeviceTokenCommandHandler(factoryFor(uow))
	identity := actor.Employee{User: kernel.NewUUID(), EmployeeID: kernel.NewUUID(), Name: "Lina"}

	uow.ExpectTransaction(ctx, true)
	uow.Tokens.On("Save", ctx, identity.User, account.RoleEmployee, "fcm-token-1").Return(nil).Once()

	require.NoError(t, handler.Handle(ctx, identity, "  fcm-token-1 "))
	uow.AssertAll(t)
}

func TestRegisterDeviceTokenCommandHandler_InvalidToken(t *testing.T) {
	identity := actor.Admin{User: kernel.NewUUID()}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "   ", wantErr: errs.ErrValueIsRequired},
		{name: "too long", token: strings.Repeat("x", 4097), wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := NewMockUoW()
			handler := commands.NewRegisterDeviceTokenCommandHandler(factoryFor(uow))

			err := handler.Handle(t.Context(), identity, tt.token)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, uow.Calls)
		})
	}
}
