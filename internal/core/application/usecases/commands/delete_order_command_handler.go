package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// DeleteOrderCommandHandler deletes a non-terminal order with its children.
// Delivered and canceled orders are history and cannot be deleted.
type DeleteOrderCommandHandler struct {
	uowFactory    UoWFactory
	listings      Listings
	notifications Notifications
}

func NewDeleteOrderCommandHandler(
	uowFactory UoWFactory,
	listings Listings,
	notifications Notifications,
) *DeleteOrderCommandHandler {
	return &DeleteOrderCommandHandler{uowFactory: uowFactory, listings: listings, notifications: notifications}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !actor.IsStaff(cmd.Actor()) {
		return errs.NewUnauthorizedError("delete order", "only staff can delete orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.ValidateDeletable(); err != nil {
		return err
	}
	if err = orders.Delete(ctx, o.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.listings.PendingOrdersChanged(ctx)
	if o.DeliveryPersonID() != nil {
		h.listings.RosterChanged(ctx)
	}
	h.notifications.NotifyAdmins(ctx, ports.Notification{
		Title: "Order deleted",
		Body:  fmt.Sprintf("Order #%s was deleted by %s", o.ID(), cmd.Actor().Label()),
		Link:  "/orders.html",
	})

	return nil
}
