package commands

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// DispatchCoordinator serializes competing acceptances of the same order.
//
// The driver is resolved first, then the order row is locked and only then its
// status is checked. A concurrent acceptance waits on the row lock and, once the
// winner commits, sees a non-pending order and gets an AlreadyResolvedError.
type DispatchCoordinator struct{}

func NewDispatchCoordinator() DispatchCoordinator {
	return DispatchCoordinator{}
}

// ResolveAcceptance returns the accepting driver and the locked, still pending order.
//
// Delivery persons accept for themselves. Admins and employees may hand the order to
// assignee; any other identity gets a NotADriverError.
func (DispatchCoordinator) ResolveAcceptance(
	ctx context.Context,
	uow UoW,
	orderID kernel.UUID,
	by actor.Identity,
	assignee *kernel.UUID,
) (*driver.DeliveryPerson, *order.Order, error) {
	dp, err := resolveAcceptingDriver(ctx, uow, by, assignee)
	if err != nil {
		return nil, nil, err
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if o.Status() != order.Pending {
		return nil, nil, errs.NewAlreadyResolvedError(orderID.String(), o.Status().String())
	}

	return dp, o, nil
}

func resolveAcceptingDriver(
	ctx context.Context,
	uow UoW,
	by actor.Identity,
	assignee *kernel.UUID,
) (*driver.DeliveryPerson, error) {
	repo := uow.DeliveryPersonRepository()

	switch by.(type) {
	case actor.DeliveryPerson:
		dp, err := repo.GetByUserID(ctx, by.UserID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewNotADriverError(by.UserID().String())
		}
		return dp, err
	case actor.Admin, actor.Employee:
		if assignee != nil {
			return repo.Get(ctx, *assignee)
		}
	}
	return nil, errs.NewNotADriverError(by.UserID().String())
}
