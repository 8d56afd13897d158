package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/ports"
)

// RemindPendingOrdersCommandHandler nudges available drivers when orders have been
// waiting longer than maxWait.
type RemindPendingOrdersCommandHandler struct {
	uowFactory    UoWFactory
	notifications Notifications
	maxWait       time.Duration
	now           func() time.Time
}

func NewRemindPendingOrdersCommandHandler(
	uowFactory UoWFactory,
	notifications Notifications,
	maxWait time.Duration,
) *RemindPendingOrdersCommandHandler {
	return &RemindPendingOrdersCommandHandler{
		uowFactory:    uowFactory,
		notifications: notifications,
		maxWait:       maxWait,
		now:           time.Now,
	}
}

// Handle returns the number of stale pending orders found.
func (h *RemindPendingOrdersCommandHandler) Handle(ctx context.Context) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().CountPendingCreatedBefore(ctx, h.now().Add(-h.maxWait))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if stale > 0 {
		h.notifications.NotifyAvailableDrivers(ctx, ports.Notification{
			Title: "Orders waiting",
			Body:  fmt.Sprintf("%d order(s) have been waiting for a driver for over %s", stale, h.maxWait),
			Link:  "/livreur.html",
		})
	}
	return stale, nil
}
