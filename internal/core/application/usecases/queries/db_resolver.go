// Package queries contains the read side of the service. Handlers query SQL directly
// and return flat read models; the pending-orders and roster listings go through the
// listing cache.
package queries

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/listings"
	"logistics/internal/core/ports"

	"gorm.io/gorm"
)

// DBResolver returns the database of the tenant carried by ctx.
type DBResolver interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// cached serves key from the cache, falling back to load on a miss or a cache error.
// Cache failures are logged and never fail the read.
func cached[T any](
	ctx context.Context,
	cache ports.Cache,
	logger *slog.Logger,
	key string,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var value T
	hit, err := cache.Get(ctx, key, &value)
	if err != nil {
		logger.WarnContext(ctx, "listing cache read failed", "key", key, "error", err)
	}
	if hit && err == nil {
		return value, nil
	}

	value, err = load(ctx)
	if err != nil {
		return value, err
	}

	if err = cache.Set(ctx, key, value, listings.TTL); err != nil {
		logger.WarnContext(ctx, "listing cache write failed", "key", key, "error", err)
	}
	return value, nil
}
