package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateAvailabilityCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name          string
		balance       string
		available     bool
		wantAvailable bool
	}{
		{name: "go online above the floor", balance: "10.00", available: true, wantAvailable: true},
		{name: "stay offline at the floor", balance: "3.00", available: true, wantAvailable: false},
		{name: "go offline", balance: "10.00", available: false, wantAvailable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			uow := NewMockUoW()
			listings := new(MockListings)
			handler := commands.NewUpdateAvailabilityCommandHandler(factoryFor(uow), listings)
			dp := newDriver(t, "Sam", tt.balance, !tt.available)

			uow.ExpectTransaction(ctx, true)
			uow.Drivers.On("GetByUserIDForUpdate", ctx, dp.UserID()).Return(dp, nil).Once()
			uow.Drivers.On("Update", ctx, dp).Return(nil).Once()
			listings.On("RosterChanged", ctx).Once()

			cmd, err := commands.NewUpdateAvailabilityCommand(nil, tt.available, driverIdentity(dp))
			require.NoError(t, err)

			result, err := handler.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, result.IsAvailable())
			uow.AssertAll(t)
			listings.AssertExpectations(t)
		})
	}
}

func TestUpdateAvailabilityCommandHandler_AdminTargetsDriver(t *testing.T) {
	ctx := t.Context()
	uow := NewMockUoW()
	listings := new(MockListings)
	handler := commands.NewUpdateAvailabilityCommandHandler(factoryFor(uow), listings)
	dp := newDriver(t, "Sam", "10.00", true)
	target := dp.ID()

	uow.ExpectTransaction(ctx, true)
	uow.Drivers.On("GetForUpdate", ctx, target).Return(dp, nil).Once()
	uow.Drivers.On("Update", ctx, dp).Return(nil).Once()
	listings.On("RosterChanged", ctx).Once()

	cmd, err := commands.NewUpdateAvailabilityCommand(&target, false, actor.Admin{User: kernel.NewUUID()})
	require.NoError(t, err)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.IsAvailable())
	uow.AssertAll(t)
}

func TestUpdateAvailabilityCommandHandler_Rejections(t *testing.T) {
	t.Run("driver targeting someone else", func(t *testing.T) {
		ctx := t.Context()
		uow := NewMockUoW()
		handler := commands.NewUpdateAvailabilityCommandHandler(factoryFor(uow), new(MockListings))
		dp := newDriver(t, "Sam", "10.00", false)
		other := kernel.NewUUID()

		uow.ExpectTransaction(ctx, false)
		uow.Drivers.On("GetByUserIDForUpdate", ctx, dp.UserID()).Return(dp, nil).Once()

		cmd, err := commands.NewUpdateAvailabilityCommand(&other, true, driverIdentity(dp))
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.False(t, dp.IsAvailable())
		uow.Drivers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("employee", func(t *testing.T) {
		ctx := t.Context()
		uow := NewMockUoW()
		handler := commands.NewUpdateAvailabilityCommandHandler(factoryFor(uow), new(MockListings))
		target := kernel.NewUUID()

		uow.ExpectTransaction(ctx, false)

		cmd, err := commands.NewUpdateAvailabilityCommand(&target, true, actor.Employee{User: kernel.NewUUID(), Name: "Lina"})
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		uow.AssertAll(t)
	})

	t.Run("admin without target", func(t *testing.T) {
		ctx := t.Context()
		uow := NewMockUoW()
		handler := commands.NewUpdateAvailabilityCommandHandler(factoryFor(uow), new(MockListings))

		uow.ExpectTransaction(ctx, false)

		cmd, err := commands.NewUpdateAvailabilityCommand(nil, true, actor.Admin{User: kernel.NewUUID()})
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		uow.AssertAll(t)
	})
}
