package commands

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrEmailIsTaken is returned when another user already uses the email.
var ErrEmailIsTaken = errs.NewValueIsInvalidErrorWithCause("email", errors.New("is already taken"))

// CreateDeliveryPersonCommandHandler creates the user and the driver profile in one
// unit of work. New drivers start unavailable.
type CreateDeliveryPersonCommandHandler struct {
	uowFactory UoWFactory
	listings   Listings
}

func NewCreateDeliveryPersonCommandHandler(uowFactory UoWFactory, listings Listings) *CreateDeliveryPersonCommandHandler {
	return &CreateDeliveryPersonCommandHandler{uowFactory: uowFactory, listings: listings}
}

func (h *CreateDeliveryPersonCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryPersonCommand,
) (*driver.DeliveryPerson, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if _, ok := cmd.Actor().(actor.Admin); !ok {
		return nil, errs.NewUnauthorizedError("create delivery person", "only admins can register drivers")
	}

	userID := kernel.NewUUID()
	user, userErr := account.NewUser(userID, cmd.Email(), cmd.Password(), account.RoleDeliveryPerson)
	dp, dpErr := driver.NewDeliveryPerson(kernel.NewUUID(), userID, cmd.Name(), cmd.Phone(), cmd.InitialBalance())
	if err := errors.Join(userErr, dpErr); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	_, err := users.GetByEmail(ctx, user.Email())
	switch {
	case err == nil:
		return nil, ErrEmailIsTaken
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = users.Add(ctx, user); err != nil {
		return nil, err
	}
	if err = uow.DeliveryPersonRepository().Add(ctx, dp); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.listings.RosterChanged(ctx)
	return dp, nil
}
