// Package models holds the trigger data model shared by the manager,
// the scanner and the persistence backends.
package models

// Trigger pairs a fire condition, an optional expire condition and an
// ordered action list with reset policy. The id is assigned on insert
// and immutable afterwards.
type Trigger struct {
	ID              int64
	Name            string
	Source          string
	ResetOnFire     bool
	ResetOnExpire   bool
	FireCondition   Condition
	ExpireCondition Condition
	Actions         []Action
}

// ResetConditions resets the fire and expire conditions to their
// initial unmet state.
func (t *Trigger) ResetConditions() {
	t.FireCondition.Reset()
	if t.ExpireCondition != nil {
		t.ExpireCondition.Reset()
	}
}

// Spec returns the serializable form of the trigger, capturing the
// current configuration of its conditions and actions.
func (t *Trigger) Spec() *TriggerSpec {
	spec := &TriggerSpec{
		ID:            t.ID,
		Name:          t.Name,
		Source:        t.Source,
		ResetOnFire:   t.ResetOnFire,
		ResetOnExpire: t.ResetOnExpire,
		FireCondition: &ConditionSpec{
			Type:          t.FireCondition.GetType(),
			Configuration: t.FireCondition.GetConfig(),
		},
	}

	if t.ExpireCondition != nil {
		spec.ExpireCondition = &ConditionSpec{
			Type:          t.ExpireCondition.GetType(),
			Configuration: t.ExpireCondition.GetConfig(),
		}
	}

	for _, action := range t.Actions {
		spec.Actions = append(spec.Actions, &ActionSpec{
			ID:            action.GetID(),
			Type:          action.GetType(),
			Configuration: action.GetConfig(),
		})
	}

	return spec
}

// TriggerSpec is the persistable form of a trigger. A nil expire
// condition means the trigger never expires.
type TriggerSpec struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"             validate:"required,min=3"`
	Source          string         `json:"source"`
	ResetOnFire     bool           `json:"reset_on_fire"`
	ResetOnExpire   bool           `json:"reset_on_expire"`
	FireCondition   *ConditionSpec `json:"fire_condition"   validate:"required"`
	ExpireCondition *ConditionSpec `json:"expire_condition,omitempty"`
	Actions         []*ActionSpec  `json:"actions"          validate:"dive"`
}
