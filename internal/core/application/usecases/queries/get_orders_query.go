package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	DefaultOrdersPageSize = 50
	MaxOrdersPageSize     = 200
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery pages through the order history, newest first. Staff see every
// order, partners the orders they placed.
type GetOrdersQuery struct {
	actor  actor.Identity
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery uses DefaultOrdersPageSize when limit is zero.
func NewGetOrdersQuery(by actor.Identity, limit, offset int) (GetOrdersQuery, error) {
	if by == nil {
		return GetOrdersQuery{}, errs.NewValueIsRequiredError("actor")
	}
	switch by.(type) {
	case actor.Admin, actor.Employee, actor.Partner:
	default:
		return GetOrdersQuery{}, errs.NewUnauthorizedError("list orders", "drivers use their dashboard")
	}

	if limit == 0 {
		limit = DefaultOrdersPageSize
	}
	var limitErr, offsetErr error
	if limit < 1 || limit > MaxOrdersPageSize {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOrdersPageSize)
	}
	if offset < 0 {
		offsetErr = errs.NewValueIsInvalidErrorWithCause("offset", errors.New("must not be negative"))
	}
	if err := errors.Join(limitErr, offsetErr); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{actor: by, limit: limit, offset: offset, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Actor() actor.Identity { return q.actor }
func (q GetOrdersQuery) Limit() int            { return q.limit }
func (q GetOrdersQuery) Offset() int           { return q.offset }

type OrderSummaryResponse struct {
	ID                  kernel.UUID `json:"id"`
	Status              string      `json:"status"`
	ClientName          string      `json:"client_name"`
	ClientPhone         string      `json:"client_phone"`
	ClientAddress       string      `json:"client_address"`
	Request             string      `json:"request"`
	PartnerName         string      `json:"partner_name,omitempty"`
	DeliveryPersonName  string      `json:"delivery_person_name,omitempty"`
	CreatedBy           string      `json:"created_by"`
	CreatedAt           time.Time   `json:"created_at"`
	DeliveredCanceledAt *time.Time  `json:"delivered_canceled_at,omitempty"`
	CancellationCause   string      `json:"cancellation_cause,omitempty"`
}
