package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound is returned when a task identifier is unknown.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTaskState is returned when an operation is attempted on a
	// task whose current status does not permit it, e.g. confirming a task
	// that is not waiting for manual confirmation.
	ErrInvalidTaskState = errors.New("invalid task state")

	// ErrTaskConflict is returned when a conditional status write finds the
	// task no longer in the expected prior status.
	ErrTaskConflict = errors.New("task status conflict")
)

// ValidationError reports a missing or malformed field in a raw
// product payload handed to the pack builder.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload field %q: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
