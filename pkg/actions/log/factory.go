package log_action

import (
	"log/slog"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/registry"
)

func NewLogActionFactory() registry.ActionFactory {
	return &LogActionFactory{}
}

type LogActionFactory struct{}

func (*LogActionFactory) ID() string {
	return "log"
}

func (*LogActionFactory) Name() string {
	return "Log"
}

func (*LogActionFactory) Description() string {
	return "Write a message to the process log"
}

func (*LogActionFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":      map[string]any{"type": "string"},
			"message": map[string]any{"type": "string", "description": "Message to log"},
			"level": map[string]any{
				"type":    "string",
				"enum":    []string{"debug", "info", "warn", "error"},
				"default": "info",
			},
		},
		"required": []string{"message"},
	}
}

func (f *LogActionFactory) Create(config map[string]any, logger *slog.Logger) (models.Action, error) {
	if config == nil {
		config = map[string]any{}
	}

	return NewLogAction(config, logger), nil
}
