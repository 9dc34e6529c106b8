// Package persistence provides standardized error types for persistence operations.
package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrTriggerNotFound indicates a trigger was not found by the given id.
	ErrTriggerNotFound = errors.New("trigger not found")

	// ErrTriggerExists indicates a trigger with the same id is already stored.
	ErrTriggerExists = errors.New("trigger already exists")
)

// TriggerError wraps trigger storage errors with operation context.
type TriggerError struct {
	Op        string // Operation being performed (e.g., "Add", "Update", "Remove")
	TriggerID int64
	Err       error
}

func (e *TriggerError) Error() string {
	return fmt.Sprintf("%s operation failed for trigger %d: %v", e.Op, e.TriggerID, e.Err)
}

func (e *TriggerError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for trigger storage errors.
func (e *TriggerError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewTriggerError creates a new trigger storage error with context.
func NewTriggerError(op string, triggerID int64, err error) *TriggerError {
	return &TriggerError{
		Op:        op,
		TriggerID: triggerID,
		Err:       err,
	}
}

// IsTriggerNotFound checks if an error indicates a trigger was not found.
func IsTriggerNotFound(err error) bool {
	return errors.Is(err, ErrTriggerNotFound)
}

// IsTriggerExists checks if an error indicates a duplicate trigger id.
func IsTriggerExists(err error) bool {
	return errors.Is(err, ErrTriggerExists)
}
