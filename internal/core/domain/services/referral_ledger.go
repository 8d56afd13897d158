package services

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

// ErrDelivererIsNotAssigned is returned when the settled driver is not the one the
// order is assigned to.
var ErrDelivererIsNotAssigned = errors.New("deliverer is not assigned to the order")

// Settlement describes the balance changes applied for one delivery.
type Settlement struct {
	// DelivererDisabled is true when the fee pushed the deliverer to the floor and
	// availability was switched off.
	DelivererDisabled bool
	// ReferrerCredited is true when the referral bonus was paid.
	ReferrerCredited bool
}

// ReferralLedger is a domain service that settles balances on delivery completion.
//
// Business rules:
//   - the deliverer pays driver.DeliveryFee, even if the balance goes negative
//   - a deliverer left at or below driver.AvailabilityFloor becomes unavailable
//   - the driver who registered the client earns driver.ReferralBonus, unless they
//     delivered the order themselves
//
// Both drivers must be loaded under lock by the caller and written in the same unit
// of work as the order.
//
// Example usage:
//
//	ledger := services.NewReferralLedger()
//	settlement, err := ledger.ApplyDeliveryCompletion(o, deliverer, referrer)
//	if err != nil {
//	    return err
//	}
//	if settlement.ReferrerCredited {
//	    // persist the referrer too
//	}
type ReferralLedger struct{}

// NewReferralLedger creates a ReferralLedger.
func NewReferralLedger() ReferralLedger {
	return ReferralLedger{}
}

// ApplyDeliveryCompletion charges the deliverer and credits the referrer of a
// delivered order. referrer is nil when the client was not added by a driver.
func (ReferralLedger) ApplyDeliveryCompletion(
	o *order.Order,
	deliverer *driver.DeliveryPerson,
	referrer *driver.DeliveryPerson,
) (Settlement, error) {
	if err := errors.Join(o.Validate(), deliverer.Validate()); err != nil {
		return Settlement{}, err
	}
	if o.Status() != order.Delivered {
		return Settlement{}, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("order %s is %s, not delivered", o.ID(), o.Status()))
	}
	if !o.IsAssignedTo(deliverer.ID()) {
		return Settlement{}, ErrDelivererIsNotAssigned
	}

	settlement := Settlement{DelivererDisabled: deliverer.ChargeDeliveryFee()}

	if referrer == nil || referrer.IsEqual(deliverer) {
		return settlement, nil
	}
	if err := referrer.Validate(); err != nil {
		return Settlement{}, err
	}
	if err := referrer.Credit(driver.ReferralBonus); err != nil {
		return Settlement{}, err
	}
	settlement.ReferrerCredited = true

	return settlement, nil
}
