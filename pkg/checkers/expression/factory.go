package expression

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
	return "expression"
}

func (f *Factory) Name() string {
	return "Expression"
}

func (f *Factory) Description() string {
	return "Condition evaluated from a boolean expression over elapsed time, evaluation count and wall clock"
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type":        "object",
		"title":       "Expression Checker Configuration",
		"description": "Configuration for expression-based condition checking",
		"properties": map[string]any{
			"expression": map[string]any{
				"type":        "string",
				"description": "Boolean expression; variables: elapsed (seconds), checks, hour, minute, weekday",
				"examples": []string{
					"elapsed > 300",
					"hour >= 9 && hour < 17",
					"checks > 10 && weekday == 1",
				},
			},
			"armed_at": map[string]any{
				"type":        "integer",
				"description": "Unix millisecond arm time; set automatically when the condition is reset",
			},
			"checks": map[string]any{
				"type":        "integer",
				"description": "Evaluation counter; set automatically",
			},
		},
		"required": []string{"expression"},
	}
}

func (f *Factory) Create(config map[string]any) (models.Condition, error) {
	if config == nil {
		return nil, ErrConfigNil
	}

	checker, err := NewChecker(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create expression checker: %w", err)
	}

	return checker, nil
}
