package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the sentinel wrapped by every ValidationError
	ErrValidation = errors.New("domain: validation failed")

	// ErrInvalidTransition is the sentinel wrapped by every TransitionError
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrInvalidStatus is returned when a status string is not one of the known values
	ErrInvalidStatus = errors.New("domain: invalid booking status")

	// ErrInvalidStylistChoice is returned when a stylist choice cannot be parsed
	ErrInvalidStylistChoice = errors.New("domain: invalid stylist choice")
)

// ValidationError describes a single missing or malformed field
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TransitionError is returned for a status change outside the allowed set
type TransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition: %s -> %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
