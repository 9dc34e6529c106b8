package registry

import (
	"fmt"

	"github.com/marden/flint/pkg/models"
)

// BuildTrigger hydrates a persisted trigger spec into an executable
// trigger by resolving its checker and action types.
func (r *Registry) BuildTrigger(spec *models.TriggerSpec) (*models.Trigger, error) {
	if spec.FireCondition == nil {
		return nil, fmt.Errorf("trigger %d has no fire condition", spec.ID)
	}

	fire, err := r.CreateChecker(spec.FireCondition.Type, spec.FireCondition.Configuration)
	if err != nil {
		return nil, fmt.Errorf("fire condition for trigger %d: %w", spec.ID, err)
	}

	trigger := &models.Trigger{
		ID:            spec.ID,
		Name:          spec.Name,
		Source:        spec.Source,
		ResetOnFire:   spec.ResetOnFire,
		ResetOnExpire: spec.ResetOnExpire,
		FireCondition: fire,
	}

	if spec.ExpireCondition != nil {
		expire, err := r.CreateChecker(spec.ExpireCondition.Type, spec.ExpireCondition.Configuration)
		if err != nil {
			return nil, fmt.Errorf("expire condition for trigger %d: %w", spec.ID, err)
		}

		trigger.ExpireCondition = expire
	}

	for _, actionSpec := range spec.Actions {
		config := actionSpec.Configuration
		if config == nil {
			config = map[string]any{}
		}

		if _, ok := config["id"]; !ok && actionSpec.ID != "" {
			config["id"] = actionSpec.ID
		}

		action, err := r.CreateAction(actionSpec.Type, config)
		if err != nil {
			return nil, fmt.Errorf("action '%s' for trigger %d: %w", actionSpec.Type, spec.ID, err)
		}

		trigger.Actions = append(trigger.Actions, action)
	}

	return trigger, nil
}
