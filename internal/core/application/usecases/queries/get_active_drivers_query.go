package queries

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrGetActiveDriversQueryIsNotConstructed = errors.New(
	"GetActiveDriversQuery must be created via NewGetActiveDriversQuery constructor",
)

// GetActiveDriversQuery lists the drivers that are available and not holding an
// accepted order, i.e. the ones an admin can hand an order to right now.
type GetActiveDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActiveDriversQuery() GetActiveDriversQuery {
	return GetActiveDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActiveDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDriversQueryIsNotConstructed)
}

type ActiveDriverResponse struct {
	ID        kernel.UUID     `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Balance   decimal.Decimal `json:"balance"`
	Latitude  *float64        `json:"latitude,omitempty"`
	Longitude *float64        `json:"longitude,omitempty"`
}

type GetActiveDriversQueryHandler struct {
	db DBResolver
}

func NewGetActiveDriversQueryHandler(db DBResolver) GetActiveDriversQueryHandler {
	return GetActiveDriversQueryHandler{db: db}
}

func (h GetActiveDriversQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDriversQuery,
) ([]ActiveDriverResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db, err := h.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	drivers := make([]ActiveDriverResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.phone,
			d.balance,
			d.latitude,
			d.longitude
		FROM delivery_persons d
		WHERE d.is_available
			AND NOT EXISTS (
				SELECT 1 FROM orders o
				WHERE o.delivery_person_id = d.id AND o.status = 'accepted'
			)
		ORDER BY d.name, d.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d ActiveDriverResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &d.Name, &d.Phone, &d.Balance, &d.Latitude, &d.Longitude); err != nil {
			return nil, err
		}

		if d.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
