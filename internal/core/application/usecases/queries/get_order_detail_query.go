package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrGetOrderDetailQueryIsNotConstructed = errors.New(
	"GetOrderDetailQuery must be created via NewGetOrderDetailQuery constructor",
)

// GetOrderDetailQuery loads one order with its client, assigned driver, cancellation
// cause and audit trail.
type GetOrderDetailQuery struct {
	orderID kernel.UUID
	actor   actor.Identity

	guard guard.ConstructorGuard
}

func NewGetOrderDetailQuery(orderID kernel.UUID, by actor.Identity) (GetOrderDetailQuery, error) {
	var actorErr error
	if by == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := errors.Join(orderID.Validate(), actorErr); err != nil {
		return GetOrderDetailQuery{}, err
	}
	return GetOrderDetailQuery{orderID: orderID, actor: by, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailQueryIsNotConstructed)
}

func (q GetOrderDetailQuery) OrderID() kernel.UUID  { return q.orderID }
func (q GetOrderDetailQuery) Actor() actor.Identity { return q.actor }

type OrderDetailResponse struct {
	ID                  kernel.UUID            `json:"id"`
	Status              string                 `json:"status"`
	Request             string                 `json:"request"`
	ClientNotes         string                 `json:"client_notes"`
	DriverNotes         string                 `json:"driver_notes"`
	EmployeeNotes       string                 `json:"employee_notes"`
	Client              ClientResponse         `json:"client"`
	PartnerName         string                 `json:"partner_name,omitempty"`
	DeliveryPerson      *DriverSummaryResponse `json:"delivery_person,omitempty"`
	CreatedBy           string                 `json:"created_by"`
	CreatedAt           time.Time              `json:"created_at"`
	DeliveredCanceledAt *time.Time             `json:"delivered_canceled_at,omitempty"`
	CancellationCause   string                 `json:"cancellation_cause,omitempty"`
	Actions             []OrderActionResponse  `json:"actions"`
}

type ClientResponse struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type DriverSummaryResponse struct {
	ID    kernel.UUID `json:"id"`
	Name  string      `json:"name"`
	Phone string      `json:"phone"`
}

// OrderActionResponse is one audit entry, oldest first.
type OrderActionResponse struct {
	Action      string    `json:"action"`
	Details     string    `json:"details"`
	PerformedBy string    `json:"performed_by"`
	PerformedAt time.Time `json:"performed_at"`
}
