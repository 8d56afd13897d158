package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderDetailQueryHandler loads an order as seen by the acting identity. Staff see
// every order, partners the orders they placed and drivers the orders assigned to
// them or still waiting for a driver.
type GetOrderDetailQueryHandler struct {
	db DBResolver
}

func NewGetOrderDetailQueryHandler(db DBResolver) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{db: db}
}

func (h GetOrderDetailQueryHandler) Handle(ctx context.Context, query GetOrderDetailQuery) (OrderDetailResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderDetailResponse{}, err
	}

	db, err := h.db.DB(ctx)
	if err != nil {
		return OrderDetailResponse{}, err
	}
	db = db.WithContext(ctx)

	var (
		detail      OrderDetailResponse
		id          uuid.UUID
		creatorID   uuid.UUID
		driverID    uuid.NullUUID
		driverName  string
		driverPhone string
	)

	row := db.Raw(`
		SELECT
			o.id,
			o.status,
			o.request,
			o.client_notes,
			o.driver_notes,
			o.employee_notes,
			c.name,
			c.phone,
			c.address,
			COALESCE(p.name, ''),
			o.delivery_person_id,
			COALESCE(d.name, ''),
			COALESCE(d.phone, ''),
			o.user_id,
			COALESCE(u.email, ''),
			o.created_at,
			o.delivered_canceled_at,
			COALESCE(cc.cause, '')
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		LEFT JOIN partners p ON p.id = o.partner_id
		LEFT JOIN delivery_persons d ON d.id = o.delivery_person_id
		LEFT JOIN users u ON u.id = o.user_id
		LEFT JOIN cancellation_causes cc ON cc.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	err = row.Scan(
		&id,
		&detail.Status,
		&detail.Request,
		&detail.ClientNotes,
		&detail.DriverNotes,
		&detail.EmployeeNotes,
		&detail.Client.Name,
		&detail.Client.Phone,
		&detail.Client.Address,
		&detail.PartnerName,
		&driverID,
		&driverName,
		&driverPhone,
		&creatorID,
		&detail.CreatedBy,
		&detail.CreatedAt,
		&detail.DeliveredCanceledAt,
		&detail.CancellationCause,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetailResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return OrderDetailResponse{}, err
	}

	if detail.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderDetailResponse{}, err
	}
	if driverID.Valid {
		dpID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return OrderDetailResponse{}, idErr
		}
		detail.DeliveryPerson = &DriverSummaryResponse{ID: dpID, Name: driverName, Phone: driverPhone}
	}

	if err = authorizeOrderView(query.Actor(), detail, creatorID); err != nil {
		return OrderDetailResponse{}, err
	}

	if detail.Actions, err = loadActions(ctx, db, query.OrderID()); err != nil {
		return OrderDetailResponse{}, err
	}

	return detail, nil
}

func authorizeOrderView(by actor.Identity, detail OrderDetailResponse, creatorID uuid.UUID) error {
	switch a := by.(type) {
	case actor.Admin, actor.Employee:
		return nil
	case actor.Partner:
		if a.User.Bytes() == creatorID {
			return nil
		}
	case actor.DeliveryPerson:
		if detail.Status == order.Pending.String() {
			return nil
		}
		if detail.DeliveryPerson != nil && detail.DeliveryPerson.ID.IsEqual(a.DeliveryPersonID) {
			return nil
		}
	}
	return errs.NewUnauthorizedError("view order", "order belongs to someone else")
}

func loadActions(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]OrderActionResponse, error) {
	actions := make([]OrderActionResponse, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			a.action,
			a.details,
			COALESCE(u.email, ''),
			a.performed_at
		FROM actions_on_order a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.order_id = ?
		ORDER BY a.performed_at, a.id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a OrderActionResponse
		if err = rows.Scan(&a.Action, &a.Details, &a.PerformedBy, &a.PerformedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return actions, nil
}
