package commands

import (
	"errors"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes an order that is still pending or accepted.
type DeleteOrderCommand struct {
	orderID kernel.UUID
	actor   actor.Identity

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.UUID, by actor.Identity) (DeleteOrderCommand, error) {
	var actorErr error
	if by == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := errors.Join(orderID.Validate(), actorErr); err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{orderID: orderID, actor: by, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.UUID  { return c.orderID }
func (c DeleteOrderCommand) Actor() actor.Identity { return c.actor }
