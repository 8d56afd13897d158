package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateDeliveryPersonCommandIsNotConstructed = errors.New(
	"CreateDeliveryPersonCommand must be created via NewCreateDeliveryPersonCommand constructor",
)

// CreateDeliveryPersonCommand registers a driver together with the user account
// the driver logs in with.
type CreateDeliveryPersonCommand struct {
	email          string
	password       string
	name           string
	phone          string
	initialBalance decimal.Decimal
	actor          actor.Identity

	guard guard.ConstructorGuard
}

func NewCreateDeliveryPersonCommand(
	email, password, name, phone string,
	initialBalance decimal.Decimal,
	by actor.Identity,
) (CreateDeliveryPersonCommand, error) {
	var actorErr, emailErr, nameErr error
	if by == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if strings.TrimSpace(email) == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if err := errors.Join(actorErr, emailErr, nameErr); err != nil {
		return CreateDeliveryPersonCommand{}, err
	}

	return CreateDeliveryPersonCommand{
		email:          email,
		password:       password,
		name:           name,
		phone:          phone,
		initialBalance: initialBalance,
		actor:          by,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryPersonCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryPersonCommandIsNotConstructed)
}

func (c CreateDeliveryPersonCommand) Email() string                   { return c.email }
func (c CreateDeliveryPersonCommand) Password() string                { return c.password }
func (c CreateDeliveryPersonCommand) Name() string                    { return c.name }
func (c CreateDeliveryPersonCommand) Phone() string                   { return c.phone }
func (c CreateDeliveryPersonCommand) InitialBalance() decimal.Decimal { return c.initialBalance }
func (c CreateDeliveryPersonCommand) Actor() actor.Identity           { return c.actor }
