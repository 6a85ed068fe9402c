// Package errs defines the error types returned to API clients.
//
// Every failure a request can end in is an *HTTPError whose Status is the
// error kind:
//
//   - 400 validation failure (malformed or missing input, with field errors)
//   - 404 not found (the targeted feedback does not exist, or no such route)
//   - 500 storage or unexpected failure (generic message, cause logged only)
//
// The global error handler serializes HTTPError directly to JSON, so every
// error body carries a human-readable `message`.
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "busNumber", "error": "é obrigatório" }
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "busNumber").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether the message is safe to show to end users as-is.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`
}

// Error returns the Message, so printing or logging the error shows it.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It compares the type only, not Code or Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
