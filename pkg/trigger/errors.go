package trigger

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateServicer indicates a servicer is already registered
	// for the source type.
	ErrDuplicateServicer = errors.New("trigger servicer already registered")

	// ErrUnsupportedTriggerType indicates no servicer is registered for
	// a trigger definition's declared type.
	ErrUnsupportedTriggerType = errors.New("trigger type is not supported")

	// ErrTriggerNotFound indicates an update or remove named an unknown
	// trigger id.
	ErrTriggerNotFound = errors.New("trigger not found")

	// ErrScanIntervalNotPositive indicates a non-positive scan interval
	// was configured.
	ErrScanIntervalNotPositive = errors.New("scan interval must be positive")
)

// ActionError reports a failed action execution during a firing,
// attributable to the specific trigger and action.
type ActionError struct {
	TriggerID  int64
	ActionID   string
	ActionType string
	Err        error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action '%s' (%s) failed for trigger %d: %v", e.ActionType, e.ActionID, e.TriggerID, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// IsActionError checks whether an error originated from a failed
// action execution.
func IsActionError(err error) bool {
	var actionErr *ActionError

	return errors.As(err, &actionErr)
}
