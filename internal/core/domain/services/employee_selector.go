package services

import (
	"context"
	"math/rand/v2"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/pkg/errs"
)

// RandomEmployeeSelector spreads cancellation follow-ups evenly over the active
// employees.
type RandomEmployeeSelector struct {
	intN func(n int) int
}

func NewRandomEmployeeSelector() RandomEmployeeSelector {
	return RandomEmployeeSelector{intN: rand.IntN}
}

// SelectFallbackEmployee returns one of candidates chosen uniformly at random.
func (s RandomEmployeeSelector) SelectFallbackEmployee(
	_ context.Context,
	candidates []*account.Employee,
) (*account.Employee, error) {
	if len(candidates) == 0 {
		return nil, errs.NewObjectNotFoundError("employee", "any active employee")
	}
	return candidates[s.intN(len(candidates))], nil
}
