package ports

import (
	"context"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
)

// ActorResolver turns an authenticated user into an actor identity.
type ActorResolver interface {
	Resolve(ctx context.Context, userID kernel.UUID, role account.Role) (actor.Identity, error)
}

// EmployeeSelector picks the employee a cancellation follow-up task goes to when
// the order was not created by an employee.
type EmployeeSelector interface {
	SelectFallbackEmployee(ctx context.Context, candidates []*account.Employee) (*account.Employee, error)
}
