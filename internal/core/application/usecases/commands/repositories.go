// Package commands contains the use cases that change state: the order lifecycle,
// order creation and deletion, and driver management. Every handler validates its
// command, runs inside one unit of work and triggers side effects only after commit.
package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UoW gives access to every repository bound to the current transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate and persist
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepository() ports.OrderRepository
		ActionRepository() ports.ActionRepository
		DeliveryPersonRepository() ports.DeliveryPersonRepository
		ClientRepository() ports.ClientRepository
		FollowUpRepository() ports.FollowUpRepository
		UserRepository() ports.UserRepository
		EmployeeRepository() ports.EmployeeRepository
		PartnerRepository() ports.PartnerRepository
		DeviceTokenRepository() ports.DeviceTokenRepository
	}

	// UoWFactory creates a unit of work per command.
	UoWFactory interface {
		Create() UoW
	}

	// Listings is told which cached read models a committed write made stale.
	Listings interface {
		PendingOrdersChanged(ctx context.Context)
		RosterChanged(ctx context.Context)
	}

	// Notifications delivers push messages after commit without blocking the caller.
	Notifications interface {
		NotifyAdmins(ctx context.Context, n ports.Notification)
		NotifyAvailableDrivers(ctx context.Context, n ports.Notification, exclude ...kernel.UUID)
		NotifyEmployee(ctx context.Context, employeeID kernel.UUID, n ports.Notification)
	}
)
