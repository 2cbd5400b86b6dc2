package alarm

import (
	"errors"
	"fmt"
)

// ValidationError reports a piece of user input that failed validation.
// The menu boundary turns these into re-prompts instead of failures.
type ValidationError struct {
	// Field names the rejected input ("time", "tone", "snooze").
	Field string
	// Reason is a human-readable description of what is wrong.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// NewValidationError builds a ValidationError for the given field with a
// formatted reason.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError

	return errors.As(err, &e)
}
