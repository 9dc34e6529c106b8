// Package persistence defines the durable storage contract for trigger
// specs and the standard errors backends must return.
package persistence

import (
	"context"

	"github.com/marden/flint/pkg/models"
)

// Persistence stores trigger specs durably. The manager writes to the
// store before mutating any in-memory state, so a failed write must
// leave the store unchanged.
type Persistence interface {
	Triggers(ctx context.Context) ([]*models.TriggerSpec, error)
	AddTrigger(ctx context.Context, spec *models.TriggerSpec) error
	UpdateTrigger(ctx context.Context, spec *models.TriggerSpec) error
	RemoveTrigger(ctx context.Context, id int64) error
	// MaxTriggerID returns the highest stored trigger id, or zero when
	// the store is empty. Used to seed id assignment on startup.
	MaxTriggerID(ctx context.Context) (int64, error)
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
