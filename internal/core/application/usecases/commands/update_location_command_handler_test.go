package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateLocationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	uow := NewMockUoW()
	handler := commands.NewUpdateLocationCommandHandler(factoryFor(uow))
	dp := newDriver(t, "Sam", "10.00", true)

	uow.ExpectTransaction(ctx, true)
	uow.Drivers.On("GetByUserIDForUpdate", ctx, dp.UserID()).Return(dp, nil).Once()
	uow.Drivers.On("Update", ctx, dp).Return(nil).Once()

	cmd, err := commands.NewUpdateLocationCommand(36.7538, 3.0588, driverIdentity(dp))
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))
	require.NotNil(t, dp.Location())
	assert.InDelta(t, 36.7538, dp.Location().Latitude(), 1e-9)
	assert.InDelta(t, 3.0588, dp.Location().Longitude(), 1e-9)
	uow.AssertAll(t)
}

func TestUpdateLocationCommandHandler_OnlyDrivers(t *testing.T) {
	uow := NewMockUoW()
	handler := commands.NewUpdateLocationCommandHandler(factoryFor(uow))

	cmd, err := commands.NewUpdateLocationCommand(36.7, 3.05, actor.Admin{User: kernel.NewUUID()})
	require.NoError(t, err)

	err = handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrNotADriver)
	assert.Empty(t, uow.Calls)
}

func TestNewUpdateLocationCommand_RejectsOutOfRange(t *testing.T) {
	_, err := commands.NewUpdateLocationCommand(91, 0, actor.Admin{User: kernel.NewUUID()})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
