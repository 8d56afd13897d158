package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionPayload carries the optional data sent along with a status change.
type TransitionPayload struct {
	Notes order.NotesPatch
	// Reason is required when canceling.
	Reason string
	// DeliveryPersonID lets admins and employees accept on behalf of a driver.
	DeliveryPersonID *kernel.UUID
	PartnerID        *kernel.UUID
}

// TransitionOrderCommand requests a status change of an order, a notes update, or both.
// A nil status means a notes-only update.
//
// Example:
//
//	to := order.Canceled
//	cmd, err := NewTransitionOrderCommand(orderID, &to, TransitionPayload{Reason: "client unreachable"}, identity)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct {
	orderID kernel.UUID
	status  *order.Status
	payload TransitionPayload
	actor   actor.Identity

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(
	orderID kernel.UUID,
	status *order.Status,
	payload TransitionPayload,
	by actor.Identity,
) (TransitionOrderCommand, error) {
	var statusErr, actorErr, emptyErr, reasonErr error
	if status != nil {
		statusErr = status.Validate()
	}
	if by == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if status == nil && payload.Notes.IsEmpty() && payload.PartnerID == nil {
		emptyErr = errs.NewValueIsRequiredError("status")
	}
	payload.Reason = strings.TrimSpace(payload.Reason)
	if status != nil && *status == order.Canceled && payload.Reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	if err := errors.Join(orderID.Validate(), statusErr, actorErr, emptyErr, reasonErr); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID: orderID,
		status:  status,
		payload: payload,
		actor:   by,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Status returns the requested status, nil for a notes-only update.
func (c TransitionOrderCommand) Status() *order.Status      { return c.status }
func (c TransitionOrderCommand) Payload() TransitionPayload { return c.payload }
func (c TransitionOrderCommand) Actor() actor.Identity      { return c.actor }
