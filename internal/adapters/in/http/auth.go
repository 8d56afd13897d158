package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/tenant"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const tokenType = "Bearer"

// Claims is the payload of an access token. A token is only valid for the tenant
// it was issued by.
type Claims struct {
	Role   string `json:"role"`
	Tenant string `json:"tenant"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed access token and the moment it stops being accepted.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive, got %s", ttl)
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for an authenticated user of tenant id.
func (s *TokenService) Issue(id tenant.ID, user queries.AuthenticatedUser) (IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Role:   user.Role.String(),
		Tenant: id.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Parse verifies the signature and expiry of raw and returns its claims.
func (s *TokenService) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	if claims.Subject == "" || claims.Role == "" || claims.Tenant == "" {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// Authenticate resolves the bearer token into the acting identity. It must run
// after TenantMiddleware.
func Authenticate(tokens *TokenService, resolver ports.ActorResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], tokenType) {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			ctx := c.Request().Context()
			current, err := tenant.FromContext(ctx)
			if err != nil {
				return err
			}
			if claims.Tenant != current.String() {
				return echo.NewHTTPError(http.StatusUnauthorized, "token was issued for another client")
			}

			userID, err := kernel.UUIDFromString(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}
			role, err := account.ParseRole(claims.Role)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			identity, err := resolver.Resolve(ctx, userID, role)
			if errors.Is(err, errs.ErrUnauthorized) {
				return echo.NewHTTPError(http.StatusUnauthorized, "account is no longer active").SetInternal(err)
			}
			if err != nil {
				return err
			}

			c.SetRequest(c.Request().WithContext(actor.WithIdentity(ctx, identity)))
			return next(c)
		}
	}
}

func identityFrom(c echo.Context) (actor.Identity, error) {
	identity, ok := actor.FromContext(c.Request().Context())
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	return identity, nil
}
