package commands

import (
	"context"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// UpdateAvailabilityCommandHandler applies an availability request. Going online is
// granted only while the balance is above driver.AvailabilityFloor.
type UpdateAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	listings   Listings
}

func NewUpdateAvailabilityCommandHandler(uowFactory UoWFactory, listings Listings) *UpdateAvailabilityCommandHandler {
	return &UpdateAvailabilityCommandHandler{uowFactory: uowFactory, listings: listings}
}

// Handle returns the driver with its resulting availability.
func (h *UpdateAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateAvailabilityCommand,
) (*driver.DeliveryPerson, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryPersonRepository()
	dp, err := lockTargetDriver(ctx, repo, cmd.Actor(), cmd.DeliveryPersonID())
	if err != nil {
		return nil, err
	}

	dp.RequestAvailability(cmd.Available())
	if err = repo.Update(ctx, dp); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.listings.RosterChanged(ctx)
	return dp, nil
}

// lockTargetDriver resolves the driver a management command applies to: the acting
// driver itself, or any driver when the actor is an admin.
func lockTargetDriver(
	ctx context.Context,
	repo ports.DeliveryPersonRepository,
	by actor.Identity,
	target *kernel.UUID,
) (*driver.DeliveryPerson, error) {
	switch by.(type) {
	case actor.DeliveryPerson:
		dp, err := repo.GetByUserIDForUpdate(ctx, by.UserID())
		if err != nil {
			return nil, err
		}
		if target != nil && !target.IsEqual(dp.ID()) {
			return nil, errs.NewUnauthorizedError("manage delivery person", "drivers can only manage themselves")
		}
		return dp, nil
	case actor.Admin:
		if target == nil {
			return nil, errs.NewValueIsRequiredError("delivery_person_id")
		}
		return repo.GetForUpdate(ctx, *target)
	default:
		return nil, errs.NewUnauthorizedError("manage delivery person", "only admins and the driver can do this")
	}
}
