package elapsed

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
	return "elapsed"
}

func (f *Factory) Name() string {
	return "Elapsed Time"
}

func (f *Factory) Description() string {
	return "Condition that is met once a fixed period has passed since the trigger was armed"
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type":        "object",
		"title":       "Elapsed Time Checker Configuration",
		"description": "Configuration for period-based condition checking",
		"properties": map[string]any{
			"period_ms": map[string]any{
				"type":             "integer",
				"description":      "Period in milliseconds after which the condition is met",
				"exclusiveMinimum": 0,
			},
			"next_check_at": map[string]any{
				"type":        "integer",
				"description": "Unix millisecond deadline; set automatically when the condition is reset",
			},
		},
		"required": []string{"period_ms"},
	}
}

func (f *Factory) Create(config map[string]any) (models.Condition, error) {
	if config == nil {
		return nil, ErrConfigNil
	}

	checker, err := NewChecker(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create elapsed checker: %w", err)
	}

	return checker, nil
}
