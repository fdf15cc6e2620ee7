// Package errs provides the standardized error types used across the order
// management service: construction guards, domain rule violations, and lookup
// failures all surface through the same small set of shapes.
//
// The package covers the common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value fails a domain rule
//   - ValueIsOutOfRangeError: a numeric value falls outside its bounds
//   - ObjectNotFoundError: a referenced object does not exist
//
// Each error type follows the same pattern: a sentinel error variable
// (e.g. ErrValueIsRequired), a struct carrying the details, constructor
// functions with and without a cause, an Error() formatting method, and
// Unwrap() so errors.Is and errors.As classify the error at every layer,
// from repository lookups up to HTTP status mapping.
package errs
