package commands

import (
	"errors"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand records the position reported by the acting driver.
type UpdateLocationCommand struct {
	location kernel.GeoPoint
	actor    actor.Identity

	guard guard.ConstructorGuard
}

func NewUpdateLocationCommand(latitude, longitude float64, by actor.Identity) (UpdateLocationCommand, error) {
	var actorErr error
	if by == nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	location, locationErr := kernel.NewGeoPoint(latitude, longitude)
	if err := errors.Join(actorErr, locationErr); err != nil {
		return UpdateLocationCommand{}, err
	}
	return UpdateLocationCommand{location: location, actor: by, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) Location() kernel.GeoPoint { return c.location }
func (c UpdateLocationCommand) Actor() actor.Identity     { return c.actor }
