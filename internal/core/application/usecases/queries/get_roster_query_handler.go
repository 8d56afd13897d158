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

type GetRosterQueryHandler struct {
	db     DBResolver
	cache  ports.Cache
	logger *slog.Logger
}

func NewGetRosterQueryHandler(db DBResolver, cache ports.Cache, logger *slog.Logger) GetRosterQueryHandler {
	return GetRosterQueryHandler{db: db, cache: cache, logger: logger.With("component", "roster_query")}
}

func (h GetRosterQueryHandler) Handle(ctx context.Context, query GetRosterQuery) ([]RosterEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	return cached(ctx, h.cache, h.logger, listings.RosterKey(tenantID), h.load)
}

func (h GetRosterQueryHandler) load(ctx context.Context) ([]RosterEntryResponse, error) {
	db, err := h.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]RosterEntryResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.phone,
			d.is_available,
			d.balance,
			(SELECT COUNT(*) FROM orders o WHERE o.delivery_person_id = d.id AND o.status = 'accepted'),
			(SELECT COUNT(*) FROM orders o WHERE o.delivery_person_id = d.id AND o.status = 'delivered'),
			(SELECT COUNT(*) FROM actions_on_order a WHERE a.user_id = d.user_id AND a.action = 'rejected')
		FROM delivery_persons d
		ORDER BY d.name, d.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry RosterEntryResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&entry.Name,
			&entry.Phone,
			&entry.IsAvailable,
			&entry.Balance,
			&entry.Accepted,
			&entry.Delivered,
			&entry.Rejected,
		); err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		roster = append(roster, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return roster, nil
}
