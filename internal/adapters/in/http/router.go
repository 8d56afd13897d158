package http

import (
	"errors"
	"log/slog"
	"net/http"

	"logistics/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries the collaborators of the middleware chain.
type RouterConfig struct {
	Tenants TenantLookup
	Actors  ports.ActorResolver
	Tokens  *TokenService
	OpenAPI *OpenAPI
	// RateLimit uses the limiter notation, e.g. "120-M". Empty disables throttling.
	RateLimit string
	Logger    *slog.Logger
}

// NewRouter builds the echo instance serving the API.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	if cfg.Tenants == nil || cfg.Actors == nil || cfg.Tokens == nil || cfg.OpenAPI == nil || cfg.Logger == nil {
		return nil, errors.New("router config is incomplete")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(cfg.Logger))
	if cfg.RateLimit != "" {
		limit, err := RateLimit(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		e.Use(limit)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	cfg.OpenAPI.RegisterDocs()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", TenantMiddleware(cfg.Tenants), cfg.OpenAPI.Validator())
	api.POST("/auth/login", s.Login)

	secured := api.Group("", Authenticate(cfg.Tokens, cfg.Actors))
	secured.POST("/devices", s.RegisterDevice)

	secured.GET("/orders", s.ListOrders)
	secured.POST("/orders", s.CreateOrder)
	secured.GET("/orders/pending", s.ListPendingOrders)
	secured.GET("/orders/:orderId", s.GetOrder)
	secured.PATCH("/orders/:orderId", s.UpdateOrder)
	secured.DELETE("/orders/:orderId", s.DeleteOrder)
	secured.POST("/orders/:orderId/accept", s.AcceptOrder)
	secured.POST("/orders/:orderId/reject", s.RejectOrder)
	secured.GET("/orders/:orderId/driver-location", s.GetDriverLocation)

	secured.GET("/delivery-persons", s.ListDeliveryPersons)
	secured.POST("/delivery-persons", s.CreateDeliveryPerson)
	secured.GET("/delivery-persons/active", s.ListActiveDeliveryPersons)
	secured.GET("/delivery-persons/me", s.GetDriverDashboard)
	secured.PUT("/delivery-persons/me/availability", s.UpdateOwnAvailability)
	secured.PUT("/delivery-persons/me/location", s.UpdateOwnLocation)
	secured.PUT("/delivery-persons/:deliveryPersonId/availability", s.UpdateAvailability)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
