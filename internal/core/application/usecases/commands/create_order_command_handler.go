package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// CreateOrderCommandHandler registers the client if needed and creates a pending
// order with its "created" audit entry. A client first registered by a driver keeps
// that driver's user as added_by, which later earns the referral bonus.
type CreateOrderCommandHandler struct {
	uowFactory    UoWFactory
	audit         AuditRecorder
	listings      Listings
	notifications Notifications
	now           func() time.Time
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	listings Listings,
	notifications Notifications,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		audit:         NewAuditRecorder(),
		listings:      listings,
		notifications: notifications,
		now:           time.Now,
	}
}

// Handle returns the created order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	by := cmd.Actor()
	partnerID := cmd.PartnerID()
	// A driver placing an order refers the client; partner_id stays with staff.
	switch p := by.(type) {
	case actor.DeliveryPerson:
		if partnerID != nil {
			return nil, errs.NewUnauthorizedError("create order", "partner_id is managed by staff")
		}
	case actor.Partner:
		id := p.PartnerID
		partnerID = &id
	}

	candidate, err := client.NewClient(kernel.NewUUID(), cmd.Client(), by.UserID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if partnerID != nil {
		if _, err = uow.PartnerRepository().Get(ctx, *partnerID); err != nil {
			return nil, err
		}
	}

	stored, err := uow.ClientRepository().FindOrCreateByPhone(ctx, candidate)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), stored.ID(), by.UserID(), partnerID, cmd.Request(), cmd.Notes(), h.now())
	if err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if _, err = h.audit.Record(ctx, uow.ActionRepository(), o, by, order.ActionCreated, "created by "+by.Label()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.listings.PendingOrdersChanged(ctx)
	h.notifications.NotifyAvailableDrivers(ctx, ports.Notification{
		Title: "New order",
		Body:  fmt.Sprintf("Order #%s is waiting for a driver", o.ID()),
		Link:  "/livreur.html",
	})

	return o, nil
}
