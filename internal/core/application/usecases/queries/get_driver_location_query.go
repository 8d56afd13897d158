package queries

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrGetDriverLocationQueryIsNotConstructed = errors.New(
	"GetDriverLocationQuery must be created via NewGetDriverLocationQuery constructor",
)

// GetDriverLocationQuery returns the last reported position of the driver carrying
// an accepted order. Staff and the partner who placed the order may ask.
type GetDriverLocationQuery struct {
	orderID kernel.UUID
	actor   actor.Identity

	guard guard.ConstructorGuard
}

func NewGetDriverLocationQuery(orderID kernel.UUID, by actor.Identity) (GetDriverLocationQuery, error) {
	var actorErr error
	if by == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := errors.Join(orderID.Validate(), actorErr); err != nil {
		return GetDriverLocationQuery{}, err
	}
	return GetDriverLocationQuery{orderID: orderID, actor: by, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDriverLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverLocationQueryIsNotConstructed)
}

type DriverLocationResponse struct {
	DeliveryPersonID kernel.UUID `json:"delivery_person_id"`
	Name             string      `json:"name"`
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
}

type GetDriverLocationQueryHandler struct {
	db DBResolver
}

func NewGetDriverLocationQueryHandler(db DBResolver) GetDriverLocationQueryHandler {
	return GetDriverLocationQueryHandler{db: db}
}

func (h GetDriverLocationQueryHandler) Handle(
	ctx context.Context,
	query GetDriverLocationQuery,
) (DriverLocationResponse, error) {
	if err := query.Validate(); err != nil {
		return DriverLocationResponse{}, err
	}

	db, err := h.db.DB(ctx)
	if err != nil {
		return DriverLocationResponse{}, err
	}

	var (
		status    string
		creatorID uuid.UUID
		driverID  uuid.NullUUID
		name      string
		latitude  *float64
		longitude *float64
	)

	err = db.WithContext(ctx).Raw(`
		SELECT
			o.status,
			o.user_id,
			o.delivery_person_id,
			COALESCE(d.name, ''),
			d.latitude,
			d.longitude
		FROM orders o
		LEFT JOIN delivery_persons d ON d.id = o.delivery_person_id
		WHERE o.id = ?
	`, query.orderID.Bytes()).Row().Scan(&status, &creatorID, &driverID, &name, &latitude, &longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return DriverLocationResponse{}, errs.NewObjectNotFoundError("order", query.orderID)
	}
	if err != nil {
		return DriverLocationResponse{}, err
	}

	if !actor.IsStaff(query.actor) && query.actor.UserID().Bytes() != creatorID {
		return DriverLocationResponse{}, errs.NewUnauthorizedError("locate driver", "order belongs to someone else")
	}
	if status != order.Accepted.String() || !driverID.Valid {
		return DriverLocationResponse{}, errs.NewOperationForbiddenError("locate driver", "order is "+status)
	}
	if latitude == nil || longitude == nil {
		return DriverLocationResponse{}, errs.NewObjectNotFoundError("location", name)
	}

	dpID, err := kernel.UUIDFromBytes(driverID.UUID[:])
	if err != nil {
		return DriverLocationResponse{}, err
	}

	return DriverLocationResponse{
		DeliveryPersonID: dpID,
		Name:             name,
		Latitude:         *latitude,
		Longitude:        *longitude,
	}, nil
}
