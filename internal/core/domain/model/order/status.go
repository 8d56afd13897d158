package order

import (
	"fmt"
	"slices"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> Delivered
//	   │  ^        │
//	   │  └────────┤ (reject)
//	   v           v
//	Canceled <─────┘
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Accepted
	Delivered
	Canceled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Accepted:  "accepted",
	Delivered: "delivered",
	Canceled:  "canceled",
}

// allowedTransitions is the single source of truth for the state machine.
var allowedTransitions = map[Status][]Status{
	Pending:   {Accepted, Canceled},
	Accepted:  {Delivered, Canceled, Pending},
	Delivered: {},
	Canceled:  {},
}

// ParseStatus converts the wire/database representation into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the lowercase name used on the wire and in storage.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transition leaves the status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// CanTransitionTo reports whether the table allows s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(allowedTransitions[s], to)
}

// ValidateTransition returns an InvalidTransitionError carrying the offending pair
// when s -> to is not allowed.
func (s Status) ValidateTransition(to Status) error {
	if !s.CanTransitionTo(to) {
		return errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return nil
}

// ValidateCanHaveDriver checks the status/assignment invariant: a delivery person is
// assigned iff the order is accepted or delivered.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	requiresDriver := s == Accepted || s == Delivered
	if hasDriver && !requiresDriver {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_person_id",
			fmt.Errorf("%s order cannot have a delivery person", s),
		)
	}
	if !hasDriver && requiresDriver {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery_person_id",
			fmt.Errorf("%s order must have a delivery person", s),
		)
	}
	return nil
}
