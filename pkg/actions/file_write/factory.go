package file_write_action

import (
	"errors"
	"log/slog"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/registry"
)

var ErrConfigNil = errors.New("config cannot be nil")

func NewFileWriteActionFactory() registry.ActionFactory {
	return &FileWriteActionFactory{}
}

type FileWriteActionFactory struct{}

func (*FileWriteActionFactory) ID() string {
	return "file_write"
}

func (*FileWriteActionFactory) Name() string {
	return "File Write"
}

func (*FileWriteActionFactory) Description() string {
	return "Write or append content to a file"
}

func (*FileWriteActionFactory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":      map[string]any{"type": "string"},
			"path":    map[string]any{"type": "string", "description": "Target file path"},
			"content": map[string]any{"type": "string"},
			"append":  map[string]any{"type": "boolean", "default": false},
		},
		"required": []string{"path"},
	}
}

func (f *FileWriteActionFactory) Create(config map[string]any, logger *slog.Logger) (models.Action, error) {
	if config == nil {
		return nil, ErrConfigNil
	}

	return NewFileWriteAction(config, logger)
}
