package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

const (
	maxRequestLength = 255
	maxNotesLength   = 255
)

// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder
// or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of the delivery lifecycle.
//
// Invariants:
//   - client and creator are always set
//   - deliveryPersonID is non-nil iff status is Accepted or Delivered
//   - deliveredCanceledAt is set iff status is terminal
//   - status changes only through Accept, Deliver, Cancel and Reject
type Order struct {
	id                  kernel.UUID
	clientID            kernel.UUID
	creatorID           kernel.UUID
	partnerID           *kernel.UUID
	deliveryPersonID    *kernel.UUID
	status              Status
	request             string
	notes               Notes
	createdAt           time.Time
	deliveredCanceledAt *time.Time

	isConstructed bool
}

// Notes groups the free-text annotations of an order.
type Notes struct {
	Client   string
	Driver   string
	Employee string
}

// NotesPatch carries optional note updates; nil fields are left untouched.
type NotesPatch struct {
	Client   *string
	Driver   *string
	Employee *string
	Request  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p NotesPatch) IsEmpty() bool {
	return p.Client == nil && p.Driver == nil && p.Employee == nil && p.Request == nil
}

// NewOrder creates a pending order placed by creatorID for clientID.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), client.ID(), actor.UserID(), nil,
//	    "2 pizzas from Chez Ali", order.Notes{Client: "ring twice"}, time.Now())
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	creatorID kernel.UUID,
	partnerID *kernel.UUID,
	request string,
	notes Notes,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setClient(clientID),
		o.setCreator(creatorID),
		o.setPartner(partnerID),
		o.setRequest(request),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the persisted state of an order, used by RestoreOrder.
type Snapshot struct {
	ID                  kernel.UUID
	ClientID            kernel.UUID
	CreatorID           kernel.UUID
	PartnerID           *kernel.UUID
	DeliveryPersonID    *kernel.UUID
	Status              Status
	Request             string
	Notes               Notes
	CreatedAt           time.Time
	DeliveredCanceledAt *time.Time
}

// RestoreOrder rebuilds an order loaded from storage and re-checks the
// status/assignment invariant so corrupted rows never reach the state machine.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		request:             s.Request,
		notes:               s.Notes,
		createdAt:           s.CreatedAt,
		deliveredCanceledAt: s.DeliveredCanceledAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setClient(s.ClientID),
		o.setCreator(s.CreatorID),
		o.setPartner(s.PartnerID),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if err := s.Status.ValidateCanHaveDriver(s.DeliveryPersonID != nil); err != nil {
		return nil, err
	}

	o.status = s.Status
	o.deliveryPersonID = s.DeliveryPersonID
	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) ClientID() kernel.UUID           { return o.clientID }
func (o *Order) CreatorID() kernel.UUID          { return o.creatorID }
func (o *Order) PartnerID() *kernel.UUID         { return o.partnerID }
func (o *Order) DeliveryPersonID() *kernel.UUID  { return o.deliveryPersonID }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) Request() string                 { return o.request }
func (o *Order) Notes() Notes                    { return o.notes }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) DeliveredCanceledAt() *time.Time { return o.deliveredCanceledAt }

// IsAssignedTo reports whether deliveryPersonID is the currently assigned driver.
func (o *Order) IsAssignedTo(driverID kernel.UUID) bool {
	return o.deliveryPersonID != nil && o.deliveryPersonID.IsEqual(driverID)
}

// Accept assigns the order to a delivery person: pending -> accepted.
func (o *Order) Accept(deliveryPersonID kernel.UUID) error {
	if err := o.status.ValidateTransition(Accepted); err != nil {
		return err
	}
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}

	o.status = Accepted
	o.deliveryPersonID = &deliveryPersonID
	return nil
}

// Deliver completes the order: accepted -> delivered.
func (o *Order) Deliver(at time.Time) error {
	if err := o.status.ValidateTransition(Delivered); err != nil {
		return err
	}

	o.status = Delivered
	o.deliveredCanceledAt = &at
	return nil
}

// Cancel terminates the order from pending or accepted. The assignment is cleared so
// the status/assignment invariant keeps holding; the previously assigned delivery
// person is returned so the caller can restore their availability.
func (o *Order) Cancel(at time.Time) (*kernel.UUID, error) {
	if err := o.status.ValidateTransition(Canceled); err != nil {
		return nil, err
	}

	previous := o.deliveryPersonID
	o.status = Canceled
	o.deliveryPersonID = nil
	o.deliveredCanceledAt = &at
	return previous, nil
}

// Reject returns an accepted order to the pending pool: accepted -> pending.
// Only the assigned delivery person may reject.
func (o *Order) Reject(deliveryPersonID kernel.UUID) error {
	if err := o.status.ValidateTransition(Pending); err != nil {
		return err
	}
	if !o.IsAssignedTo(deliveryPersonID) {
		return errs.NewUnauthorizedError("reject order", "only the assigned delivery person can reject an order")
	}

	o.status = Pending
	o.deliveryPersonID = nil
	return nil
}

// ApplyNotes applies the non-nil fields of the patch after validating all of them.
func (o *Order) ApplyNotes(patch NotesPatch) error {
	notes := o.notes
	if patch.Client != nil {
		notes.Client = *patch.Client
	}
	if patch.Driver != nil {
		notes.Driver = *patch.Driver
	}
	if patch.Employee != nil {
		notes.Employee = *patch.Employee
	}

	var requestErr error
	request := o.request
	if patch.Request != nil {
		request = strings.TrimSpace(*patch.Request)
		requestErr = validateText("request", request, maxRequestLength, true)
	}

	if err := errors.Join(validateNotes(notes), requestErr); err != nil {
		return err
	}

	o.notes = notes
	o.request = request
	return nil
}

// AssignPartner attaches the partner on whose behalf the order is delivered.
func (o *Order) AssignPartner(partnerID kernel.UUID) error {
	return o.setPartner(&partnerID)
}

// ValidateDeletable rejects deletion of delivered or canceled orders, which are kept
// as history.
func (o *Order) ValidateDeletable() error {
	if o.status.IsTerminal() {
		return errs.NewOperationForbiddenError("delete order", fmt.Sprintf("%s orders cannot be deleted", o.status))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setClient(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client_id", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setCreator(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	o.creatorID = id
	return nil
}

func (o *Order) setPartner(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("partner_id", err)
	}
	o.partnerID = id
	return nil
}

func (o *Order) setRequest(request string) error {
	request = strings.TrimSpace(request)
	if err := validateText("request", request, maxRequestLength, true); err != nil {
		return err
	}
	o.request = request
	return nil
}

func (o *Order) setNotes(notes Notes) error {
	if err := validateNotes(notes); err != nil {
		return err
	}
	o.notes = notes
	return nil
}

func validateNotes(notes Notes) error {
	return errors.Join(
		validateText("client_notes", notes.Client, maxNotesLength, false),
		validateText("driver_notes", notes.Driver, maxNotesLength, false),
		validateText("employee_notes", notes.Employee, maxNotesLength, false),
	)
}

func validateText(field, value string, maxLength int, required bool) error {
	if required && value == "" {
		return errs.NewValueIsRequiredError(field)
	}
	if utf8.RuneCountInString(value) > maxLength {
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("must be at most %d characters", maxLength))
	}
	return nil
}
