package domain

import (
	"errors"
	"strings"
)

// ValidationError reports a request that is missing required fields.
// Handlers map it to 400; the session is never touched.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.Join(e.Fields, " and ") + " are required"
}

// NewValidationError creates a ValidationError for the given missing fields.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// InternalErrorMessage is shown to clients in place of unexpected failures.
const InternalErrorMessage = "Something went wrong. Please try again later."
