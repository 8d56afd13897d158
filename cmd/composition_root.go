package cmd

import (
	"context"
	"log/slog"

	"logistics/api"
	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/notify"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/accountrepo"
	"logistics/internal/adapters/out/postgres/tenancy"
	"logistics/internal/core/application/listings"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"github.com/labstack/echo/v4"
)

type CompositionRoot struct {
	config     Config
	registry   *tenancy.Registry
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      ports.Cache
	listings   *listings.Invalidator
	dispatcher *notify.Dispatcher
	logger     *slog.Logger
}

// NewCompositionRoot wires the shared infrastructure. ops may be nil.
func NewCompositionRoot(
	config Config,
	registry *tenancy.Registry,
	cache ports.Cache,
	notifier ports.Notifier,
	ops notify.OpsChannel,
	logger *slog.Logger,
) *CompositionRoot {
	return &CompositionRoot{
		config:     config,
		registry:   registry,
		uowFactory: postgres.NewGormUnitOfWorkFactory(registry),
		cache:      cache,
		listings:   listings.NewInvalidator(cache, logger),
		dispatcher: notify.NewDispatcher(notifier, accountrepo.NewTokenDirectory(registry), ops, logger),
		logger:     logger,
	}
}

// Dispatcher is exposed so shutdown can wait for notifications in flight.
func (c *CompositionRoot) Dispatcher() *notify.Dispatcher { return c.dispatcher }

func (c *CompositionRoot) unitOfWork() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() *commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		c.unitOfWork(),
		services.NewRandomEmployeeSelector(),
		c.listings,
		c.dispatcher,
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.unitOfWork(), c.listings, c.dispatcher)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.unitOfWork(), c.listings, c.dispatcher)
}

func (c *CompositionRoot) CreateCreateDeliveryPersonCommandHandler() *commands.CreateDeliveryPersonCommandHandler {
	return commands.NewCreateDeliveryPersonCommandHandler(c.unitOfWork(), c.listings)
}

func (c *CompositionRoot) CreateUpdateAvailabilityCommandHandler() *commands.UpdateAvailabilityCommandHandler {
	return commands.NewUpdateAvailabilityCommandHandler(c.unitOfWork(), c.listings)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() *commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.unitOfWork())
}

func (c *CompositionRoot) CreateRegisterDeviceTokenCommandHandler() *commands.RegisterDeviceTokenCommandHandler {
	return commands.NewRegisterDeviceTokenCommandHandler(c.unitOfWork())
}

func (c *CompositionRoot) CreateSweepAvailabilityCommandHandler() *commands.SweepAvailabilityCommandHandler {
	return commands.NewSweepAvailabilityCommandHandler(c.unitOfWork(), c.listings)
}

func (c *CompositionRoot) CreateRemindPendingOrdersCommandHandler() *commands.RemindPendingOrdersCommandHandler {
	return commands.NewRemindPendingOrdersCommandHandler(c.unitOfWork(), c.dispatcher, c.config.PendingReminderMaxWait)
}

// CreateHTTPHandlers bundles every use case the API serves.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		Authenticate:         queries.NewAuthenticateQueryHandler(c.registry),
		RegisterDeviceToken:  c.CreateRegisterDeviceTokenCommandHandler(),
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		TransitionOrder:      c.CreateTransitionOrderCommandHandler(),
		DeleteOrder:          c.CreateDeleteOrderCommandHandler(),
		CreateDeliveryPerson: c.CreateCreateDeliveryPersonCommandHandler(),
		UpdateAvailability:   c.CreateUpdateAvailabilityCommandHandler(),
		UpdateLocation:       c.CreateUpdateLocationCommandHandler(),
		GetOrders:            queries.NewGetOrdersQueryHandler(c.registry),
		GetPendingOrders:     queries.NewGetPendingOrdersQueryHandler(c.registry, c.cache, c.logger),
		GetOrderDetail:       queries.NewGetOrderDetailQueryHandler(c.registry),
		GetDriverLocation:    queries.NewGetDriverLocationQueryHandler(c.registry),
		GetRoster:            queries.NewGetRosterQueryHandler(c.registry, c.cache, c.logger),
		GetActiveDrivers:     queries.NewGetActiveDriversQueryHandler(c.registry),
		GetDriverDashboard:   queries.NewGetDriverDashboardQueryHandler(c.registry),
	}
}

// CreateRouter builds the echo instance with the full middleware chain.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	tokens, err := httpin.NewTokenService(c.config.JWTSecret, c.config.JWTTTL)
	if err != nil {
		return nil, err
	}
	doc, err := httpin.LoadOpenAPI(ctx, api.Spec)
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(c.CreateHTTPHandlers(), tokens)
	return httpin.NewRouter(server, httpin.RouterConfig{
		Tenants:   c.registry,
		Actors:    accountrepo.NewActorResolver(c.registry),
		Tokens:    tokens,
		OpenAPI:   doc,
		RateLimit: c.config.RateLimit,
		Logger:    c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSweepAvailabilityCommandHandler(),
		c.CreateRemindPendingOrdersCommandHandler(),
		c.registry,
		jobs.Schedules{
			AvailabilitySweep: c.config.AvailabilitySweepSchedule,
			PendingReminder:   c.config.PendingReminderSchedule,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
