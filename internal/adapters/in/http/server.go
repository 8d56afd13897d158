package http

import (
	"context"
	"errors"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/tenant"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
)

// Use cases the transport depends on. Each is satisfied by the matching command or
// query handler.
type (
	Authenticator interface {
		Handle(ctx context.Context, query queries.AuthenticateQuery) (queries.AuthenticatedUser, error)
	}
	DeviceTokenRegistrar interface {
		Handle(ctx context.Context, by actor.Identity, token string) error
	}
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	OrderTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
	}
	OrderDeleter interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
	DeliveryPersonCreator interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryPersonCommand) (*driver.DeliveryPerson, error)
	}
	AvailabilityUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateAvailabilityCommand) (*driver.DeliveryPerson, error)
	}
	LocationUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateLocationCommand) error
	}
	OrdersLister interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderSummaryResponse, error)
	}
	PendingOrdersLister interface {
		Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.PendingOrderResponse, error)
	}
	OrderDetailGetter interface {
		Handle(ctx context.Context, query queries.GetOrderDetailQuery) (queries.OrderDetailResponse, error)
	}
	DriverLocationGetter interface {
		Handle(ctx context.Context, query queries.GetDriverLocationQuery) (queries.DriverLocationResponse, error)
	}
	RosterLister interface {
		Handle(ctx context.Context, query queries.GetRosterQuery) ([]queries.RosterEntryResponse, error)
	}
	ActiveDriversLister interface {
		Handle(ctx context.Context, query queries.GetActiveDriversQuery) ([]queries.ActiveDriverResponse, error)
	}
	DriverDashboardGetter interface {
		Handle(ctx context.Context, query queries.GetDriverDashboardQuery) (queries.DriverDashboardResponse, error)
	}
)

// Handlers bundles the use cases served over HTTP.
type Handlers struct {
	Authenticate         Authenticator
	RegisterDeviceToken  DeviceTokenRegistrar
	CreateOrder          OrderCreator
	TransitionOrder      OrderTransitioner
	DeleteOrder          OrderDeleter
	CreateDeliveryPerson DeliveryPersonCreator
	UpdateAvailability   AvailabilityUpdater
	UpdateLocation       LocationUpdater
	GetOrders            OrdersLister
	GetPendingOrders     PendingOrdersLister
	GetOrderDetail       OrderDetailGetter
	GetDriverLocation    DriverLocationGetter
	GetRoster            RosterLister
	GetActiveDrivers     ActiveDriversLister
	GetDriverDashboard   DriverDashboardGetter
}

// Server translates HTTP requests into commands and queries. Errors are returned
// as is and rendered by NewErrorHandler.
type Server struct {
	handlers Handlers
	tokens   *TokenService
}

func NewServer(handlers Handlers, tokens *TokenService) *Server {
	return &Server{handlers: handlers, tokens: tokens}
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	query, err := queries.NewAuthenticateQuery(req.Email, req.Password)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	user, err := s.handlers.Authenticate.Handle(ctx, query)
	if err != nil {
		return err
	}
	issued, err := s.tokens.Issue(tenantID, user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     issued.Token,
		TokenType: tokenType,
		Role:      user.Role.String(),
		ExpiresAt: issued.ExpiresAt,
	})
}

// RegisterDevice handles POST /api/v1/devices.
func (s *Server) RegisterDevice(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req DeviceTokenRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	if err = s.handlers.RegisterDeviceToken.Handle(c.Request().Context(), identity, req.Token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var limit, offset int
	if err = runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &limit); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("limit", err)
	}
	if err = runtime.BindQueryParameter("form", true, false, "offset", c.QueryParams(), &offset); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("offset", err)
	}

	query, err := queries.NewGetOrdersQuery(identity, limit, offset)
	if err != nil {
		return err
	}
	orders, err := s.handlers.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// ListPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) ListPendingOrders(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	if _, isDriver := identity.(actor.DeliveryPerson); !isDriver && !actor.IsStaff(identity) {
		return errs.NewUnauthorizedError("list pending orders", "only staff and drivers see the pending pool")
	}

	orders, err := s.handlers.GetPendingOrders.Handle(c.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req CreateOrderRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		client.Details{Phone: req.ClientPhone, Name: req.ClientName, Address: req.ClientAddress},
		req.Request,
		order.Notes{Client: req.ClientNotes, Driver: req.DriverNotes, Employee: req.EmployeeNotes},
		req.PartnerID,
		identity,
	)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newOrderResponse(created))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderDetailQuery(orderID, identity)
	if err != nil {
		return err
	}
	detail, err := s.handlers.GetOrderDetail.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateOrder handles PATCH /api/v1/orders/{orderId}: a status change, a notes
// update, or both.
func (s *Server) UpdateOrder(c echo.Context) error {
	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	var status *order.Status
	if req.Status != nil {
		parsed, err := order.ParseStatus(*req.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	return s.transition(c, status, commands.TransitionPayload{
		Notes:            req.notes(),
		Reason:           req.Reason,
		DeliveryPersonID: req.DeliveryPersonID,
		PartnerID:        req.PartnerID,
	})
}

// AcceptOrder handles POST /api/v1/orders/{orderId}/accept. Drivers accept for
// themselves, staff name the driver in the body.
func (s *Server) AcceptOrder(c echo.Context) error {
	var req AcceptOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	accepted := order.Accepted
	return s.transition(c, &accepted, commands.TransitionPayload{DeliveryPersonID: req.DeliveryPersonID})
}

// RejectOrder handles POST /api/v1/orders/{orderId}/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	pending := order.Pending
	return s.transition(c, &pending, commands.TransitionPayload{})
}

func (s *Server) transition(c echo.Context, status *order.Status, payload commands.TransitionPayload) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, status, payload, identity)
	if err != nil {
		return err
	}
	updated, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, identity)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetDriverLocation handles GET /api/v1/orders/{orderId}/driver-location.
func (s *Server) GetDriverLocation(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	orderID, err := orderIDParam(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDriverLocationQuery(orderID, identity)
	if err != nil {
		return err
	}
	location, err := s.handlers.GetDriverLocation.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, location)
}

// ListDeliveryPersons handles GET /api/v1/delivery-persons.
func (s *Server) ListDeliveryPersons(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	if !actor.IsStaff(identity) {
		return errs.NewUnauthorizedError("list delivery persons", "staff only")
	}

	roster, err := s.handlers.GetRoster.Handle(c.Request().Context(), queries.NewGetRosterQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roster)
}

// CreateDeliveryPerson handles POST /api/v1/delivery-persons.
func (s *Server) CreateDeliveryPerson(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req CreateDeliveryPersonRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	balance := decimal.Zero
	if req.Balance != "" {
		if balance, err = decimal.NewFromString(req.Balance); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("balance", err)
		}
	}

	cmd, err := commands.NewCreateDeliveryPersonCommand(req.Email, req.Password, req.Name, req.Phone, balance, identity)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateDeliveryPerson.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newDeliveryPersonResponse(created))
}

// ListActiveDeliveryPersons handles GET /api/v1/delivery-persons/active.
func (s *Server) ListActiveDeliveryPersons(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	if !actor.IsStaff(identity) {
		return errs.NewUnauthorizedError("list active delivery persons", "staff only")
	}

	drivers, err := s.handlers.GetActiveDrivers.Handle(c.Request().Context(), queries.NewGetActiveDriversQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, drivers)
}

// GetDriverDashboard handles GET /api/v1/delivery-persons/me.
func (s *Server) GetDriverDashboard(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetDriverDashboardQuery(identity)
	if err != nil {
		return err
	}
	dashboard, err := s.handlers.GetDriverDashboard.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard)
}

// UpdateOwnAvailability handles PUT /api/v1/delivery-persons/me/availability.
func (s *Server) UpdateOwnAvailability(c echo.Context) error {
	return s.updateAvailability(c, nil)
}

// UpdateAvailability handles PUT /api/v1/delivery-persons/{deliveryPersonId}/availability.
func (s *Server) UpdateAvailability(c echo.Context) error {
	var deliveryPersonID kernel.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "deliveryPersonId", c.Param("deliveryPersonId"),
		&deliveryPersonID, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("deliveryPersonId", err)
	}
	return s.updateAvailability(c, &deliveryPersonID)
}

func (s *Server) updateAvailability(c echo.Context, deliveryPersonID *kernel.UUID) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req AvailabilityRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	if req.IsAvailable == nil {
		return errs.NewValueIsRequiredError("is_available")
	}

	cmd, err := commands.NewUpdateAvailabilityCommand(deliveryPersonID, *req.IsAvailable, identity)
	if err != nil {
		return err
	}
	dp, err := s.handlers.UpdateAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newDeliveryPersonResponse(dp))
}

// UpdateOwnLocation handles PUT /api/v1/delivery-persons/me/location.
func (s *Server) UpdateOwnLocation(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	var req LocationRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	var missing []error
	if req.Latitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("latitude"))
	}
	if req.Longitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("longitude"))
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	cmd, err := commands.NewUpdateLocationCommand(*req.Latitude, *req.Longitude, identity)
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	var orderID kernel.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"),
		&orderID, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return orderID, nil
}
