package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery lists the orders waiting for a driver, oldest first.
//
// Example:
//
//	handler := NewGetPendingOrdersQueryHandler(registry, cache, logger)
//	orders, err := handler.Handle(ctx, NewGetPendingOrdersQuery())
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// PendingOrderResponse is one row of the pending-orders listing.
type PendingOrderResponse struct {
	ID            kernel.UUID `json:"id"`
	ClientName    string      `json:"client_name"`
	ClientPhone   string      `json:"client_phone"`
	ClientAddress string      `json:"client_address"`
	PartnerName   string      `json:"partner_name,omitempty"`
	Request       string      `json:"request"`
	ClientNotes   string      `json:"client_notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}
