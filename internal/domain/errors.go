package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks a parameter value rejected at the input boundary.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrComputationFailure marks an unexpected failure inside the projection engine.
	ErrComputationFailure = errors.New("computation failure")
)

// ParameterError describes which field was rejected and why.
type ParameterError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s=%q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidParameter.
func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

func invalid(field, value, reason string) error {
	return &ParameterError{Field: field, Value: value, Reason: reason}
}
