package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetRosterQueryIsNotConstructed = errors.New(
	"GetRosterQuery must be created via NewGetRosterQuery constructor",
)

// GetRosterQuery lists every delivery person of the tenant with per-status order
// counts. The result is shared by all staff and cached.
type GetRosterQuery struct {
	guard guard.ConstructorGuard
}

func NewGetRosterQuery() GetRosterQuery {
	return GetRosterQuery{guard: guard.NewConstructorGuard()}
}

func (q GetRosterQuery) Validate() error {
	return q.guard.Validate(ErrGetRosterQueryIsNotConstructed)
}

// RosterEntryResponse counts the orders a driver currently holds, has delivered and
// has handed back.
type RosterEntryResponse struct {
	ID          kernel.UUID     `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	IsAvailable bool            `json:"is_available"`
	Balance     decimal.Decimal `json:"balance"`
	Accepted    int64           `json:"accepted"`
	Delivered   int64           `json:"delivered"`
	Rejected    int64           `json:"rejected"`
}
