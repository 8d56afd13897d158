package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of them so callers
// can classify failures with errors.Is.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyResolved    = errors.New("order is already resolved")
	ErrNotADriver         = errors.New("actor is not a delivery person")
	ErrUnauthorized       = errors.New("actor is not allowed to perform this action")
	ErrPersistenceFailed  = errors.New("persistence failed")
	ErrOperationForbidden = errors.New("operation is forbidden")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError is returned when an entity cannot be found by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed input value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError is returned by the order state machine when the requested
// status is not reachable from the current one.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AlreadyResolvedError is returned to the loser of an acceptance race.
type AlreadyResolvedError struct {
	OrderID any
	Status  string
}

func NewAlreadyResolvedError(orderID any, status string) *AlreadyResolvedError {
	return &AlreadyResolvedError{OrderID: orderID, Status: status}
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("%s: order %s is %s", ErrAlreadyResolved, e.OrderID, e.Status)
}

func (e *AlreadyResolvedError) Unwrap() error {
	return ErrAlreadyResolved
}

// NotADriverError is returned when the acting identity has no delivery person record.
type NotADriverError struct {
	UserID any
}

func NewNotADriverError(userID any) *NotADriverError {
	return &NotADriverError{UserID: userID}
}

func (e *NotADriverError) Error() string {
	return fmt.Sprintf("%s: user %s", ErrNotADriver, e.UserID)
}

func (e *NotADriverError) Unwrap() error {
	return ErrNotADriver
}

// UnauthorizedError is returned when the actor lacks the role or ownership an action requires.
type UnauthorizedError struct {
	Action string
	Reason string
}

func NewUnauthorizedError(action, reason string) *UnauthorizedError {
	return &UnauthorizedError{Action: action, Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrUnauthorized, e.Action, e.Reason)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// OperationForbiddenError is returned when an operation is not allowed in the current
// state of an entity, e.g. deleting a delivered order.
type OperationForbiddenError struct {
	Operation string
	Reason    string
}

func NewOperationForbiddenError(operation, reason string) *OperationForbiddenError {
	return &OperationForbiddenError{Operation: operation, Reason: reason}
}

func (e *OperationForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrOperationForbidden, e.Operation, e.Reason)
}

func (e *OperationForbiddenError) Unwrap() error {
	return ErrOperationForbidden
}

// PersistenceError wraps a store failure. Both the sentinel and the driver error
// remain reachable through errors.Is / errors.As.
type PersistenceError struct {
	Op    string
	Cause error
}

func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrPersistenceFailed, e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceFailed, e.Cause}
}

// FieldErrors flattens a (possibly joined) validation error into a map keyed by
// parameter name. Non-validation errors are ignored.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	collectFieldErrors(err, fields)
	return fields
}

func collectFieldErrors(err error, fields map[string]string) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if _, isPersistence := err.(*PersistenceError); !isPersistence {
			for _, e := range joined.Unwrap() {
				collectFieldErrors(e, fields)
			}
			return
		}
	}

	var (
		required   *ValueIsRequiredError
		invalid    *ValueIsInvalidError
		outOfRange *ValueIsOutOfRangeError
	)
	switch {
	case errors.As(err, &required):
		fields[required.ParamName] = ErrValueIsRequired.Error()
	case errors.As(err, &invalid):
		msg := ErrValueIsInvalid.Error()
		if invalid.Cause != nil {
			msg = invalid.Cause.Error()
		}
		fields[invalid.ParamName] = msg
	case errors.As(err, &outOfRange):
		fields[outOfRange.ParamName] = fmt.Sprintf("must be between %s and %s",
			sanitize(outOfRange.Min), sanitize(outOfRange.Max))
	}
}

// IsValidation reports whether err carries at least one per-field validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
