package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary over the database of the tenant
// carried by the context passed to Begin. Repositories returned after Begin are
// bound to that transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ActionRepository() ActionRepository
	DeliveryPersonRepository() DeliveryPersonRepository
	ClientRepository() ClientRepository
	FollowUpRepository() FollowUpRepository
	UserRepository() UserRepository
	EmployeeRepository() EmployeeRepository
	PartnerRepository() PartnerRepository
	DeviceTokenRepository() DeviceTokenRepository
}
