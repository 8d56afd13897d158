// Package tenant carries the tenant a request or job runs for through the context.
package tenant

import (
	"context"
	"errors"
)

// ErrNoTenant is returned when a context carries no tenant.
var ErrNoTenant = errors.New("no tenant in context")

// ID names a tenant, e.g. "main" or "edu".
type ID string

func (id ID) String() string { return string(id) }

type tenantKey struct{}

// WithTenant returns a copy of ctx carrying id.
func WithTenant(ctx context.Context, id ID) context.Context {
	return context.WithValue(ctx, tenantKey{}, id)
}

// FromContext returns the tenant stored by WithTenant.
func FromContext(ctx context.Context) (ID, error) {
	id, ok := ctx.Value(tenantKey{}).(ID)
	if !ok || id == "" {
		return "", ErrNoTenant
	}
	return id, nil
}
