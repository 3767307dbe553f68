// Package errs provides standardized error types for the parcel service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: an identifier that does not resolve
//   - StatusIsInvalidError: a lifecycle status name that is not recognized
//   - PreconditionFailedError: an operation not allowed in the current state
//   - ConflictError: a write that would break a uniqueness or exclusivity rule
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels, so transport
// layers can map them to responses without inspecting message text.
package errs
