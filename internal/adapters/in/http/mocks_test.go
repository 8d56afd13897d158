package http_test

import (
	"context"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/tenant"

	"github.com/stretchr/testify/mock"
)

type fakeTenants map[string]tenant.ID

func (f fakeTenants) Lookup(domain string) (tenant.ID, bool) {
	id, ok := f[domain]
	return id, ok
}

type fakeActors map[kernel.UUID]actor.Identity

func (f fakeActors) Resolve(_ context.Context, userID kernel.UUID, role account.Role) (actor.Identity, error) {
	identity, ok := f[userID]
	if !ok || identity.Role() != role {
		return nil, errs.NewUnauthorizedError("resolve actor", "unknown user")
	}
	return identity, nil
}

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Handle(ctx context.Context, query queries.AuthenticateQuery) (queries.AuthenticatedUser, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.AuthenticatedUser), args.Error(1)
}

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderTransitioner struct{ mock.Mock }

func (m *MockOrderTransitioner) Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderDeleter struct{ mock.Mock }

func (m *MockOrderDeleter) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAvailabilityUpdater struct{ mock.Mock }

func (m *MockAvailabilityUpdater) Handle(
	ctx context.Context,
	cmd commands.UpdateAvailabilityCommand,
) (*driver.DeliveryPerson, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.DeliveryPerson), args.Error(1)
}

type MockLocationUpdater struct{ mock.Mock }

func (m *MockLocationUpdater) Handle(ctx context.Context, cmd commands.UpdateLocationCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrdersLister struct{ mock.Mock }

func (m *MockOrdersLister) Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderSummaryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderSummaryResponse), args.Error(1)
}

type MockRosterLister struct{ mock.Mock }

func (m *MockRosterLister) Handle(ctx context.Context, query queries.GetRosterQuery) ([]queries.RosterEntryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.RosterEntryResponse), args.Error(1)
}
