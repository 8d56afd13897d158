package commands

import (
	"context"
	"strings"

	"logistics/internal/core/domain/model/actor"
	"logistics/internal/pkg/errs"
)

const maxDeviceTokenLength = 4096

// RegisterDeviceTokenCommandHandler stores the push token of the acting user's device
// so the user can be reached by notifications.
type RegisterDeviceTokenCommandHandler struct {
	uowFactory UoWFactory
}

func NewRegisterDeviceTokenCommandHandler(uowFactory UoWFactory) *RegisterDeviceTokenCommandHandler {
	return &RegisterDeviceTokenCommandHandler{uowFactory: uowFactory}
}

func (h *RegisterDeviceTokenCommandHandler) Handle(ctx context.Context, by actor.Identity, token string) error {
	token = strings.TrimSpace(token)
	switch {
	case by == nil:
		return errs.NewValueIsRequiredError("actor")
	case token == "":
		return errs.NewValueIsRequiredError("token")
	case len(token) > maxDeviceTokenLength:
		return errs.NewValueIsOutOfRangeError("token", len(token), 1, maxDeviceTokenLength)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DeviceTokenRepository().Save(ctx, by.UserID(), by.Role(), token); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
