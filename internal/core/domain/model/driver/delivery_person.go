package driver

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	maxNameLength  = 255
	maxPhoneLength = 20
)

var (
	// DeliveryFee is charged to the delivering driver on completion.
	DeliveryFee = decimal.RequireFromString("3.00")
	// ReferralBonus is credited to the driver who brought in the client.
	ReferralBonus = decimal.RequireFromString("1.00")
	// AvailabilityFloor is the balance at or below which a driver cannot be available.
	AvailabilityFloor = decimal.RequireFromString("3.00")
)

var (
	ErrDeliveryPersonIsNotConstructed = errors.New("DeliveryPerson must be created via NewDeliveryPerson constructor")
	ErrNameIsRequired                 = errs.NewValueIsRequiredError("name")
	ErrAmountMustBePositive           = errs.NewValueIsInvalidErrorWithCause("amount", errors.New("must be greater than 0"))
)

// DeliveryPerson is a driver able to accept and deliver orders.
type DeliveryPerson struct {
	id          kernel.UUID
	userID      kernel.UUID
	name        string
	phone       string
	isAvailable bool
	balance     decimal.Decimal
	location    *kernel.GeoPoint
	guard       guard.ConstructorGuard
}

// NewDeliveryPerson registers a driver. New drivers start unavailable, as they must
// opt in once their balance allows it.
func NewDeliveryPerson(
	id kernel.UUID,
	userID kernel.UUID,
	name string,
	phone string,
	initialBalance decimal.Decimal,
) (*DeliveryPerson, error) {
	dp := &DeliveryPerson{guard: guard.NewConstructorGuard()}

	var balanceErr error
	if initialBalance.IsNegative() {
		balanceErr = errs.NewValueIsInvalidErrorWithCause("balance", errors.New("must not be negative"))
	}

	if err := errors.Join(
		dp.setID(id),
		dp.setUser(userID),
		dp.setName(name),
		dp.setPhone(phone),
		balanceErr,
	); err != nil {
		return nil, err
	}

	dp.balance = initialBalance
	return dp, nil
}

// RestoreDeliveryPerson rebuilds a driver loaded from storage. The balance may be
// negative, as deliveries are charged regardless of the remaining balance.
func RestoreDeliveryPerson(
	id kernel.UUID,
	userID kernel.UUID,
	name string,
	phone string,
	isAvailable bool,
	balance decimal.Decimal,
	location *kernel.GeoPoint,
) (*DeliveryPerson, error) {
	dp := &DeliveryPerson{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		dp.setID(id),
		dp.setUser(userID),
		dp.setName(name),
		dp.setPhone(phone),
	); err != nil {
		return nil, err
	}

	dp.isAvailable = isAvailable
	dp.balance = balance
	dp.location = location
	return dp, nil
}

// Validate ensures the driver was built through a constructor.
func (d *DeliveryPerson) Validate() error {
	if d == nil {
		return ErrDeliveryPersonIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryPersonIsNotConstructed)
}

// IsEqual compares drivers by identity.
func (d *DeliveryPerson) IsEqual(other *DeliveryPerson) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *DeliveryPerson) ID() kernel.UUID            { return d.id }
func (d *DeliveryPerson) UserID() kernel.UUID        { return d.userID }
func (d *DeliveryPerson) Name() string               { return d.name }
func (d *DeliveryPerson) Phone() string              { return d.phone }
func (d *DeliveryPerson) IsAvailable() bool          { return d.isAvailable }
func (d *DeliveryPerson) Balance() decimal.Decimal   { return d.balance }
func (d *DeliveryPerson) Location() *kernel.GeoPoint { return d.location }

// IsAboveFloor reports whether the balance allows the driver to be available.
func (d *DeliveryPerson) IsAboveFloor() bool {
	return d.balance.GreaterThan(AvailabilityFloor)
}

// ChargeDeliveryFee debits DeliveryFee and evaluates the availability floor.
// It reports whether availability was switched off.
func (d *DeliveryPerson) ChargeDeliveryFee() bool {
	d.balance = d.balance.Sub(DeliveryFee)
	return d.EnforceBalanceFloor()
}

// Credit adds a positive amount to the balance.
func (d *DeliveryPerson) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	d.balance = d.balance.Add(amount)
	return nil
}

// EnforceBalanceFloor switches availability off when the balance is at or below the
// floor. It reports whether the flag changed.
func (d *DeliveryPerson) EnforceBalanceFloor() bool {
	if d.isAvailable && !d.IsAboveFloor() {
		d.isAvailable = false
		return true
	}
	return false
}

// RestoreAvailability marks the driver available again after a cancellation or a
// rejection. The floor is not re-evaluated here; it applies on the next evaluation.
func (d *DeliveryPerson) RestoreAvailability() {
	d.isAvailable = true
}

// RequestAvailability applies a driver or admin availability change. Requests to
// become available are granted only above the floor; the resulting flag is returned.
func (d *DeliveryPerson) RequestAvailability(available bool) bool {
	d.isAvailable = available && d.IsAboveFloor()
	return d.isAvailable
}

// MoveTo records the last known position.
func (d *DeliveryPerson) MoveTo(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = &location
	return nil
}

// UpdateProfile changes name and phone; nil values are left untouched.
func (d *DeliveryPerson) UpdateProfile(name, phone *string) error {
	var nameErr, phoneErr error
	if name != nil {
		nameErr = d.setName(*name)
	}
	if phone != nil {
		phoneErr = d.setPhone(*phone)
	}
	return errors.Join(nameErr, phoneErr)
}

// String implements fmt.Stringer for log attributes.
func (d *DeliveryPerson) String() string {
	return fmt.Sprintf("DeliveryPerson(%s, %s)", d.id, d.name)
}

func (d *DeliveryPerson) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *DeliveryPerson) setUser(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	d.userID = id
	return nil
}

func (d *DeliveryPerson) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return errs.NewValueIsInvalidErrorWithCause("name", fmt.Errorf("must be at most %d characters", maxNameLength))
	}
	d.name = name
	return nil
}

func (d *DeliveryPerson) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if utf8.RuneCountInString(phone) > maxPhoneLength {
		return errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("must be at most %d characters", maxPhoneLength))
	}
	d.phone = phone
	return nil
}
