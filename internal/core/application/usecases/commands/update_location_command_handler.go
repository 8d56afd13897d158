package commands

import (
	"context"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/pkg/errs"
)

// UpdateLocationCommandHandler stores the last known position of a driver.
type UpdateLocationCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateLocationCommandHandler(uowFactory UoWFactory) *UpdateLocationCommandHandler {
	return &UpdateLocationCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if _, ok := cmd.Actor().(actor.DeliveryPerson); !ok {
		return errs.NewNotADriverError(cmd.Actor().UserID().String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryPersonRepository()
	dp, err := repo.GetByUserIDForUpdate(ctx, cmd.Actor().UserID())
	if err != nil {
		return err
	}
	if err = dp.MoveTo(cmd.Location()); err != nil {
		return err
	}
	if err = repo.Update(ctx, dp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
