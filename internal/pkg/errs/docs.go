// Package errs provides standardized error types for the logistics application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: per-field validation failures
//   - ObjectNotFoundError: for when an entity cannot be found
//   - InvalidTransitionError: the order state machine rejected a status change
//   - AlreadyResolvedError: an acceptance race was lost
//   - NotADriverError, UnauthorizedError: the actor lacks the required role or ownership
//   - OperationForbiddenError: the entity state does not allow the operation
//   - PersistenceError: a store or transaction failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// FieldErrors flattens joined validation errors into a field -> message map so the
// transport layer can surface them per field before any persistence is attempted.
package errs
