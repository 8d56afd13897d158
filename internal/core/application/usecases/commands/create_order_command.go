package commands

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new pending order for a client identified by phone.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), client.Details{
//	    Phone: "0612345678", Name: "Nadia", Address: "12 rue des Lilas",
//	}, "2 pizzas", order.Notes{Client: "ring twice"}, nil, identity)
type CreateOrderCommand struct {
	orderID   kernel.UUID
	client    client.Details
	request   string
	notes     order.Notes
	partnerID *kernel.UUID
	actor     actor.Identity

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field up front so the caller gets all
// field errors at once.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	details client.Details,
	request string,
	notes order.Notes,
	partnerID *kernel.UUID,
	by actor.Identity,
) (CreateOrderCommand, error) {
	var actorErr error
	if by == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}

	details = details.Normalize()
	// The order is built once here only to validate request and notes.
	var orderErr error
	if by != nil {
		_, orderErr = order.NewOrder(orderID, kernel.NewUUID(), by.UserID(), partnerID, request, notes, time.Time{})
	}

	if err := errors.Join(actorErr, details.Validate(), orderErr); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:   orderID,
		client:    details,
		request:   request,
		notes:     notes,
		partnerID: partnerID,
		actor:     by,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) Client() client.Details  { return c.client }
func (c CreateOrderCommand) Request() string         { return c.request }
func (c CreateOrderCommand) Notes() order.Notes      { return c.notes }
func (c CreateOrderCommand) PartnerID() *kernel.UUID { return c.partnerID }
func (c CreateOrderCommand) Actor() actor.Identity   { return c.actor }
