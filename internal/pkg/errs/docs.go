// Package errs provides standardized error types for the expeditor application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the application's error taxonomy:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value violates a business rule
//   - ValueIsOutOfRangeError: a numeric value falls outside its interval
//   - ObjectNotFoundError: an entity cannot be found (or vanished mid-operation)
//   - ConcurrencyConflictError: a conditional write lost a race against another
//     client and should be re-evaluated by the caller
//   - PermissionDeniedError: the operation is not allowed in the current
//     operational state (e.g. claiming an item in an unattended sector)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConcurrencyConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Conflicts and validation errors are recoverable locally: the initiating
// client re-evaluates and may retry once. They are never treated as generic
// write failures.
package errs
