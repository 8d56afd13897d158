package commands

import (
	"context"

	"logistics/internal/core/domain/model/driver"
)

// SweepAvailabilityCommandHandler re-applies the balance floor to every available
// driver of the tenant in the context. It is the periodic evaluation point of the
// floor for drivers whose availability was restored by a cancellation or rejection.
type SweepAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	listings   Listings
}

func NewSweepAvailabilityCommandHandler(uowFactory UoWFactory, listings Listings) *SweepAvailabilityCommandHandler {
	return &SweepAvailabilityCommandHandler{uowFactory: uowFactory, listings: listings}
}

// Handle returns how many drivers were switched off.
func (h *SweepAvailabilityCommandHandler) Handle(ctx context.Context) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	disabled, err := uow.DeliveryPersonRepository().DisableAtOrBelow(ctx, driver.AvailabilityFloor)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if disabled > 0 {
		h.listings.RosterChanged(ctx)
	}
	return disabled, nil
}
