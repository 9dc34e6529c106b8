package models

// Condition is a boolean predicate with resettable internal state.
// A trigger owns two independent instances, one for firing and one for
// expiration; they are never shared.
type Condition interface {
	GetType() string
	// IsMet evaluates the predicate against the condition's current state.
	IsMet() bool
	// Reset clears accumulated state, e.g. restarts a timer.
	Reset()
	// GetConfig returns the serializable configuration, including any
	// mutable state that must survive a restart.
	GetConfig() map[string]any
}

// ConditionSpec is the persistable form of a condition: a checker type
// plus its configuration.
type ConditionSpec struct {
	Type          string         `json:"type"           validate:"required"`
	Configuration map[string]any `json:"configuration"`
}
