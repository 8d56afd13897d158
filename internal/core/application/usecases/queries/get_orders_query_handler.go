package queries

import (
	"context"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrdersQueryHandler struct {
	db DBResolver
}

func NewGetOrdersQueryHandler(db DBResolver) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db, err := h.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	scoped := db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id, o.status, c.name, c.phone, c.address, o.request,
			COALESCE(p.name, ''), COALESCE(d.name, ''), COALESCE(u.email, ''),
			o.created_at, o.delivered_canceled_at, COALESCE(cc.cause, '')`).
		Joins("JOIN clients c ON c.id = o.client_id").
		Joins("LEFT JOIN partners p ON p.id = o.partner_id").
		Joins("LEFT JOIN delivery_persons d ON d.id = o.delivery_person_id").
		Joins("LEFT JOIN users u ON u.id = o.user_id").
		Joins("LEFT JOIN cancellation_causes cc ON cc.order_id = o.id").
		Scopes(visibleTo(query.actor)).
		Order("o.created_at DESC, o.id").
		Limit(query.limit).
		Offset(query.offset)

	rows, err := scoped.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		var o OrderSummaryResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&o.Status,
			&o.ClientName,
			&o.ClientPhone,
			&o.ClientAddress,
			&o.Request,
			&o.PartnerName,
			&o.DeliveryPersonName,
			&o.CreatedBy,
			&o.CreatedAt,
			&o.DeliveredCanceledAt,
			&o.CancellationCause,
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

func visibleTo(by actor.Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p, ok := by.(actor.Partner); ok {
			return db.Where("o.user_id = ?", p.User.Bytes())
		}
		return db
	}
}
