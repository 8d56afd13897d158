package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, assignment, notes and timestamps of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and holds an exclusive row lock until the unit of
	// work ends. Concurrent callers block on the lock and then observe the committed
	// state, which is how the acceptance race is serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the order together with its follow-up task, cancellation cause
	// and audit trail.
	Delete(ctx context.Context, id kernel.UUID) error

	// CountPendingCreatedBefore counts orders still waiting for a driver since cutoff.
	CountPendingCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ActionRepository appends audit entries. There is no update or delete.
type ActionRepository interface {
	Add(ctx context.Context, action *order.Action) error
}
