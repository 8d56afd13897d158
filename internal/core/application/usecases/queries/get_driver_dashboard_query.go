package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetDriverDashboardQueryIsNotConstructed = errors.New(
	"GetDriverDashboardQuery must be created via NewGetDriverDashboardQuery constructor",
)

// GetDriverDashboardQuery is what a driver sees after logging in: balance,
// availability and the orders currently assigned to them.
type GetDriverDashboardQuery struct {
	driver actor.DeliveryPerson

	guard guard.ConstructorGuard
}

func NewGetDriverDashboardQuery(by actor.Identity) (GetDriverDashboardQuery, error) {
	d, ok := by.(actor.DeliveryPerson)
	if !ok {
		if by == nil {
			return GetDriverDashboardQuery{}, errs.NewValueIsRequiredError("actor")
		}
		return GetDriverDashboardQuery{}, errs.NewNotADriverError(by.UserID().String())
	}
	return GetDriverDashboardQuery{driver: d, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverDashboardQueryIsNotConstructed)
}

type DriverDashboardResponse struct {
	DeliveryPersonID kernel.UUID             `json:"delivery_person_id"`
	Name             string                  `json:"name"`
	Balance          decimal.Decimal         `json:"balance"`
	IsAvailable      bool                    `json:"is_available"`
	DeliveredCount   int64                   `json:"delivered_count"`
	Orders           []AssignedOrderResponse `json:"orders"`
}

// AssignedOrderResponse is an accepted order on the driver's dashboard.
type AssignedOrderResponse struct {
	ID            kernel.UUID `json:"id"`
	ClientName    string      `json:"client_name"`
	ClientPhone   string      `json:"client_phone"`
	ClientAddress string      `json:"client_address"`
	Request       string      `json:"request"`
	ClientNotes   string      `json:"client_notes,omitempty"`
	DriverNotes   string      `json:"driver_notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

type GetDriverDashboardQueryHandler struct {
	db DBResolver
}

func NewGetDriverDashboardQueryHandler(db DBResolver) GetDriverDashboardQueryHandler {
	return GetDriverDashboardQueryHandler{db: db}
}

func (h GetDriverDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetDriverDashboardQuery,
) (DriverDashboardResponse, error) {
	if err := query.Validate(); err != nil {
		return DriverDashboardResponse{}, err
	}

	db, err := h.db.DB(ctx)
	if err != nil {
		return DriverDashboardResponse{}, err
	}
	db = db.WithContext(ctx)

	dashboard := DriverDashboardResponse{DeliveryPersonID: query.driver.DeliveryPersonID}

	err = db.Raw(`
		SELECT
			d.name,
			d.balance,
			d.is_available,
			(SELECT COUNT(*) FROM orders o WHERE o.delivery_person_id = d.id AND o.status = 'delivered')
		FROM delivery_persons d
		WHERE d.id = ?
	`, query.driver.DeliveryPersonID.Bytes()).Row().Scan(
		&dashboard.Name,
		&dashboard.Balance,
		&dashboard.IsAvailable,
		&dashboard.DeliveredCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return DriverDashboardResponse{}, errs.NewNotADriverError(query.driver.User.String())
	}
	if err != nil {
		return DriverDashboardResponse{}, err
	}

	if dashboard.Orders, err = loadAssignedOrders(ctx, db, query.driver.DeliveryPersonID); err != nil {
		return DriverDashboardResponse{}, err
	}

	return dashboard, nil
}

func loadAssignedOrders(ctx context.Context, db *gorm.DB, driverID kernel.UUID) ([]AssignedOrderResponse, error) {
	orders := make([]AssignedOrderResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			c.name,
			c.phone,
			c.address,
			o.request,
			o.client_notes,
			o.driver_notes,
			o.created_at
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		WHERE o.delivery_person_id = ? AND o.status = 'accepted'
		ORDER BY o.created_at, o.id
	`, driverID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var o AssignedOrderResponse
		var id uuid.UUID

		if err = rows.Scan(
			&id,
			&o.ClientName,
			&o.ClientPhone,
			&o.ClientAddress,
			&o.Request,
			&o.ClientNotes,
			&o.DriverNotes,
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
