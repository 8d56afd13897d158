package queries

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/listings"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/tenant"

	"github.com/google/uuid"
)

// GetPendingOrdersQueryHandler serves the pending-orders listing of the current
// tenant from the cache, rebuilding it from SQL on a miss.
type GetPendingOrdersQueryHandler struct {
	db     DBResolver
	cache  ports.Cache
	logger *slog.Logger
}

func NewGetPendingOrdersQueryHandler(db DBResolver, cache ports.Cache, logger *slog.Logger) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db, cache: cache, logger: logger.With("component", "pending_orders_query")}
}

func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]PendingOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	return cached(ctx, h.cache, h.logger, listings.PendingOrdersKey(tenantID), h.load)
}

func (h GetPendingOrdersQueryHandler) load(ctx context.Context) ([]PendingOrderResponse, error) {
	db, err := h.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]PendingOrderResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			c.name,
			c.phone,
			c.address,
			COALESCE(p.name, ''),
			o.request,
			o.client_notes,
			o.created_at
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		LEFT JOIN partners p ON p.id = o.partner_id
		WHERE o.status = 'pending'
		ORDER BY o.created_at, o.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var o PendingOrderResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&o.ClientName,
			&o.ClientPhone,
			&o.ClientAddress,
			&o.PartnerName,
			&o.Request,
			&o.ClientNotes,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}

		if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
