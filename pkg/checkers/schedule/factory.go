package schedule

import (
	"errors"
	"fmt"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/registry"
)

var ErrConfigNil = errors.New("config cannot be nil")

func NewFactory() registry.CheckerFactory {
	return &Factory{}
}

type Factory struct{}

func (f *Factory) ID() string {
	return "schedule"
}

func (f *Factory) Name() string {
	return "Schedule"
}

func (f *Factory) Description() string {
	return "Condition that is met on each activation of a cron schedule"
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type":        "object",
		"title":       "Schedule Checker Configuration",
		"description": "Configuration for cron-based condition checking",
		"properties": map[string]any{
			"cron": map[string]any{
				"type":        "string",
				"description": "Cron expression defining the schedule (standard 5-field format)",
				"examples": []string{
					"0 9 * * *",    // Daily at 9 AM
					"*/15 * * * *", // Every 15 minutes
					"0 18 * * 5",   // Every Friday at 6 PM
				},
			},
			"next_due_at": map[string]any{
				"type":        "integer",
				"description": "Unix millisecond deadline; set automatically when the condition is reset",
			},
		},
		"required": []string{"cron"},
	}
}

func (f *Factory) Create(config map[string]any) (models.Condition, error) {
	if config == nil {
		return nil, ErrConfigNil
	}

	checker, err := NewChecker(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule checker: %w", err)
	}

	return checker, nil
}
