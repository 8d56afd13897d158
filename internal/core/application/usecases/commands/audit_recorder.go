package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
)

// AuditRecorder appends one entry to the order history per lifecycle event. It
// writes through the action repository of the caller's unit of work, so a failure
// aborts the whole transaction.
type AuditRecorder struct {
	now func() time.Time
}

func NewAuditRecorder() AuditRecorder {
	return AuditRecorder{now: time.Now}
}

// Record stores the entry and returns it.
func (r AuditRecorder) Record(
	ctx context.Context,
	actions ports.ActionRepository,
	o *order.Order,
	by actor.Identity,
	tag order.ActionTag,
	details string,
) (*order.Action, error) {
	action, err := order.NewAction(kernel.NewUUID(), o.ID(), by.UserID(), tag, details, r.now())
	if err != nil {
		return nil, err
	}
	if err = actions.Add(ctx, action); err != nil {
		return nil, err
	}
	return action, nil
}
