package http

import (
	"net/http"
	"strings"

	"logistics/internal/pkg/tenant"

	"github.com/labstack/echo/v4"
)

// ClientDomainHeader names the front-end a request comes from; the domain selects
// the tenant database.
const ClientDomainHeader = "X-Client-Domain"

// TenantLookup resolves the tenant serving a client domain.
type TenantLookup interface {
	Lookup(domain string) (tenant.ID, bool)
}

// TenantMiddleware stores the tenant of the request in its context. Requests from
// an unknown domain are refused before any database is touched.
func TenantMiddleware(lookup TenantLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			domain := strings.TrimSpace(c.Request().Header.Get(ClientDomainHeader))
			id, ok := lookup.Lookup(domain)
			if domain == "" || !ok {
				return echo.NewHTTPError(http.StatusForbidden, "unknown client domain")
			}

			req := c.Request()
			c.SetRequest(req.WithContext(tenant.WithTenant(req.Context(), id)))
			return next(c)
		}
	}
}
