package http_action

import (
	"errors"
	"log/slog"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/registry"
)

var ErrConfigNil = errors.New("config cannot be nil")

func NewHTTPRequestActionFactory() registry.ActionFactory {
	return &HTTPRequestActionFactory{}
}

type HTTPRequestActionFactory struct{}

func (*HTTPRequestActionFactory) ID() string {
	return "http_request"
}

func (*HTTPRequestActionFactory) Name() string {
	return "HTTP Request"
}

func (*HTTPRequestActionFactory) Description() string {
	return "Perform an HTTP request against a configured URL"
}

func (*HTTPRequestActionFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":  map[string]any{"type": "string"},
			"url": map[string]any{"type": "string", "description": "Request URL"},
			"method": map[string]any{
				"type":    "string",
				"enum":    []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
				"default": "GET",
			},
			"body":       map[string]any{"type": "string"},
			"headers":    map[string]any{"type": "object"},
			"timeout_ms": map[string]any{"type": "integer", "exclusiveMinimum": 0},
		},
		"required": []string{"url"},
	}
}

func (f *HTTPRequestActionFactory) Create(config map[string]any, logger *slog.Logger) (models.Action, error) {
	if config == nil {
		return nil, ErrConfigNil
	}

	return NewHTTPRequestAction(config, logger)
}
