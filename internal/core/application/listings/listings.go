// Package listings names the cached read models of a tenant and invalidates them
// after successful writes. Cache failures are logged and never returned.
package listings

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/ports"
	"logistics/internal/pkg/tenant"
)

// TTL is how long a cached listing may be served.
const TTL = 60 * time.Second

const (
	pendingOrdersPrefix = "pending_orders:"
	rosterPrefix        = "delivery_persons:"
)

// PendingOrdersKey is the cache key of the pending orders listing of a tenant.
func PendingOrdersKey(id tenant.ID) string { return pendingOrdersPrefix + id.String() }

// RosterKey is the cache key of the delivery person roster of a tenant.
func RosterKey(id tenant.ID) string { return rosterPrefix + id.String() }

// Invalidator drops cached listings of the tenant in the context.
type Invalidator struct {
	cache  ports.Cache
	logger *slog.Logger
}

func NewInvalidator(cache ports.Cache, logger *slog.Logger) *Invalidator {
	return &Invalidator{cache: cache, logger: logger.With("component", "listings")}
}

// PendingOrdersChanged invalidates the pending orders listing.
func (i *Invalidator) PendingOrdersChanged(ctx context.Context) {
	i.drop(ctx, PendingOrdersKey)
}

// RosterChanged invalidates the delivery person roster.
func (i *Invalidator) RosterChanged(ctx context.Context) {
	i.drop(ctx, RosterKey)
}

func (i *Invalidator) drop(ctx context.Context, key func(tenant.ID) string) {
	id, err := tenant.FromContext(ctx)
	if err != nil {
		i.logger.ErrorContext(ctx, "cannot invalidate listing", "error", err)
		return
	}
	k := key(id)
	if err = i.cache.Delete(ctx, k); err != nil {
		i.logger.WarnContext(ctx, "cache invalidation failed", "key", k, "error", err)
	}
}
