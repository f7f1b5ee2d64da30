package models

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable wraps any failure to reach or use the database.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrDuplicateEmail means another adopter already registered the email.
	ErrDuplicateEmail = errors.New("an adopter with this email already exists")
	// ErrPetUnavailable covers both a missing pet and one already adopted.
	ErrPetUnavailable = errors.New("pet not found or already adopted")
	// ErrAdopterNotFound means no adopter has the given id.
	ErrAdopterNotFound = errors.New("adopter not found")
	// ErrInvalidInput is matched by every ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports a malformed input field. It matches
// ErrInvalidInput under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
