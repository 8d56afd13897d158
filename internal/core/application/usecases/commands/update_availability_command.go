package commands

import (
	"errors"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrUpdateAvailabilityCommandIsNotConstructed = errors.New(
	"UpdateAvailabilityCommand must be created via NewUpdateAvailabilityCommand constructor",
)

// UpdateAvailabilityCommand asks for a driver to go online or offline. A nil
// deliveryPersonID targets the acting driver.
type UpdateAvailabilityCommand struct {
	deliveryPersonID *kernel.UUID
	available        bool
	actor            actor.Identity

	guard guard.ConstructorGuard
}

func NewUpdateAvailabilityCommand(
	deliveryPersonID *kernel.UUID,
	available bool,
	by actor.Identity,
) (UpdateAvailabilityCommand, error) {
	if by == nil {
		return UpdateAvailabilityCommand{}, errs.NewValueIsRequiredError("actor")
	}
	if deliveryPersonID != nil {
		if err := deliveryPersonID.Validate(); err != nil {
			return UpdateAvailabilityCommand{}, err
		}
	}
	return UpdateAvailabilityCommand{
		deliveryPersonID: deliveryPersonID,
		available:        available,
		actor:            by,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAvailabilityCommandIsNotConstructed)
}

func (c UpdateAvailabilityCommand) DeliveryPersonID() *kernel.UUID { return c.deliveryPersonID }
func (c UpdateAvailabilityCommand) Available() bool                { return c.available }
func (c UpdateAvailabilityCommand) Actor() actor.Identity          { return c.actor }
