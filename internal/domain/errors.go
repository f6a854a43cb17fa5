package domain

import (
	"errors"
	"fmt"
)

// ErrOpeningNotFound is returned when removing an opening that is not part of the room.
var ErrOpeningNotFound = errors.New("opening not found in room")

// ValidationError reports a domain constraint violation. It always carries the
// name of the offending field and the value that was rejected so callers can
// build a user-facing message without parsing the error string.
type ValidationError struct {
	Field  string
	Value  float64
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Detail)
}

func newValidationError(field string, value float64, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Detail: fmt.Sprintf(format, args...),
	}
}
