package web

import "github.com/marden/flint/pkg/models"

// TriggerRequest is the payload for creating or updating a trigger.
type TriggerRequest struct {
	Name            string                `json:"name"             validate:"required,min=3"`
	ResetOnFire     bool                  `json:"reset_on_fire"`
	ResetOnExpire   bool                  `json:"reset_on_expire"`
	FireCondition   *models.ConditionSpec `json:"fire_condition"   validate:"required"`
	ExpireCondition *models.ConditionSpec `json:"expire_condition,omitempty"`
	Actions         []*models.ActionSpec  `json:"actions"          validate:"dive"`
}

// CapabilityResponse describes one registered checker or action type.
type CapabilityResponse struct {
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Schema      map[string]any `json:"schema,omitempty"`
}
