package commands_test

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/followup"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) CountPendingCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockActionRepository struct{ mock.Mock }

func (m *MockActionRepository) Add(ctx context.Context, a *order.Action) error {
	return m.Called(ctx, a).Error(0)
}

type MockDeliveryPersonRepository struct{ mock.Mock }

func (m *MockDeliveryPersonRepository) Add(ctx context.Context, dp *driver.DeliveryPerson) error {
	return m.Called(ctx, dp).Error(0)
}

func (m *MockDeliveryPersonRepository) Update(ctx context.Context, dp *driver.DeliveryPerson) error {
	return m.Called(ctx, dp).Error(0)
}

func (m *MockDeliveryPersonRepository) get(args mock.Arguments) (*driver.DeliveryPerson, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.DeliveryPerson), args.Error(1)
}

func (m *MockDeliveryPersonRepository) Get(ctx context.Context, id kernel.UUID) (*driver.DeliveryPerson, error) {
	return m.get(m.Called(ctx, id))
}

func (m *MockDeliveryPersonRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.DeliveryPerson, error) {
	return m.get(m.Called(ctx, id))
}

func (m *MockDeliveryPersonRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.DeliveryPerson, error) {
	return m.get(m.Called(ctx, userID))
}

func (m *MockDeliveryPersonRepository) GetByUserIDForUpdate(
	ctx context.Context,
	userID kernel.UUID,
) (*driver.DeliveryPerson, error) {
	return m.get(m.Called(ctx, userID))
}

func (m *MockDeliveryPersonRepository) DisableAtOrBelow(ctx context.Context, floor decimal.Decimal) (int64, error) {
	args := m.Called(ctx, floor)
	return args.Get(0).(int64), args.Error(1)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) FindOrCreateByPhone(ctx context.Context, c *client.Client) (*client.Client, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *MockClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

type MockFollowUpRepository struct{ mock.Mock }

func (m *MockFollowUpRepository) AddTask(ctx context.Context, t *followup.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockFollowUpRepository) AddCancellationCause(ctx context.Context, c *followup.CancellationCause) error {
	return m.Called(ctx, c).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *account.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*account.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.User), args.Error(1)
}

type MockEmployeeRepository struct{ mock.Mock }

func (m *MockEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*account.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*account.Employee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListActive(ctx context.Context) ([]*account.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Employee), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*account.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Partner), args.Error(1)
}

func (m *MockPartnerRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*account.Partner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Partner), args.Error(1)
}

type MockDeviceTokenRepository struct{ mock.Mock }

func (m *MockDeviceTokenRepository) Save(ctx context.Context, userID kernel.UUID, role account.Role, token string) error {
	return m.Called(ctx, userID, role, token).Error(0)
}

// MockUoW hands out the repository mocks it holds.
type MockUoW struct {
	mock.Mock

	Orders    *MockOrderRepository
	Actions   *MockActionRepository
	Drivers   *MockDeliveryPersonRepository
	Clients   *MockClientRepository
	FollowUps *MockFollowUpRepository
	Users     *MockUserRepository
	Employees *MockEmployeeRepository
	Partners  *MockPartnerRepository
	Tokens    *MockDeviceTokenRepository
}

func NewMockUoW() *MockUoW {
	return &MockUoW{
		Orders:    new(MockOrderRepository),
		Actions:   new(MockActionRepository),
		Drivers:   new(MockDeliveryPersonRepository),
		Clients:   new(MockClientRepository),
		FollowUps: new(MockFollowUpRepository),
		Users:     new(MockUserRepository),
		Employees: new(MockEmployeeRepository),
		Partners:  new(MockPartnerRepository),
		Tokens:    new(MockDeviceTokenRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository                   { return m.Orders }
func (m *MockUoW) ActionRepository() ports.ActionRepository                 { return m.Actions }
func (m *MockUoW) DeliveryPersonRepository() ports.DeliveryPersonRepository { return m.Drivers }
func (m *MockUoW) ClientRepository() ports.ClientRepository                 { return m.Clients }
func (m *MockUoW) FollowUpRepository() ports.FollowUpRepository             { return m.FollowUps }
func (m *MockUoW) UserRepository() ports.UserRepository                     { return m.Users }
func (m *MockUoW) EmployeeRepository() ports.EmployeeRepository             { return m.Employees }
func (m *MockUoW) PartnerRepository() ports.PartnerRepository               { return m.Partners }
func (m *MockUoW) DeviceTokenRepository() ports.DeviceTokenRepository       { return m.Tokens }

// AssertAll checks the expectations of the unit of work and all its repositories.
func (m *MockUoW) AssertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.Orders.AssertExpectations(t)
	m.Actions.AssertExpectations(t)
	m.Drivers.AssertExpectations(t)
	m.Clients.AssertExpectations(t)
	m.FollowUps.AssertExpectations(t)
	m.Users.AssertExpectations(t)
	m.Employees.AssertExpectations(t)
	m.Partners.AssertExpectations(t)
	m.Tokens.AssertExpectations(t)
}

// ExpectTransaction sets up Begin, Rollback and, when committed is true, Commit.
func (m *MockUoW) ExpectTransaction(ctx context.Context, committed bool) {
	m.On("Begin", ctx).Return(nil).Once()
	if committed {
		m.On("Commit", ctx).Return(nil).Once()
	}
	m.On("Rollback", ctx).Return(nil).Once()
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

func factoryFor(uow *MockUoW) *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(uow).Once()
	return f
}

type MockListings struct{ mock.Mock }

func (m *MockListings) PendingOrdersChanged(ctx context.Context) { m.Called(ctx) }
func (m *MockListings) RosterChanged(ctx context.Context)        { m.Called(ctx) }

type MockNotifications struct{ mock.Mock }

func (m *MockNotifications) NotifyAdmins(ctx context.Context, n ports.Notification) {
	m.Called(ctx, n)
}

func (m *MockNotifications) NotifyAvailableDrivers(ctx context.Context, n ports.Notification, exclude ...kernel.UUID) {
	m.Called(ctx, n, exclude)
}

func (m *MockNotifications) NotifyEmployee(ctx context.Context, employeeID kernel.UUID, n ports.Notification) {
	m.Called(ctx, employeeID, n)
}

type MockEmployeeSelector struct{ mock.Mock }

func (m *MockEmployeeSelector) SelectFallbackEmployee(
	ctx context.Context,
	candidates []*account.Employee,
) (*account.Employee, error) {
	args := m.Called(ctx, candidates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Employee), args.Error(1)
}
