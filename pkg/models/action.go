package models

import "context"

// Action is a single side-effecting step attached to a trigger's firing.
type Action interface {
	GetID() string
	GetType() string
	Execute(ctx context.Context) error
	GetConfig() map[string]any
}

// ActionSpec is the persistable form of an action.
type ActionSpec struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"           validate:"required"`
	Configuration map[string]any `json:"configuration"`
}

// ActionResult records the outcome of one action execution during a
// firing. Results are aggregated so the reset-vs-remove decision can be
// made explicitly instead of via early exit.
type ActionResult struct {
	ActionID   string
	ActionType string
	Err        error
}

// Succeeded reports whether every result in the list is error free.
func Succeeded(results []ActionResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return false
		}
	}

	return true
}
