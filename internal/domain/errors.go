package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP status codes.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller lacks the organizer capability
	// required for an administrative operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when a request argument is malformed before
	// any query executes (e.g. an empty user ID passed to a user filter).
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError carries a human-readable validation failure message, such as
// a slot date falling outside the event window.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError returns a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
