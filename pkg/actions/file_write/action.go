// Package file_write_action provides an action that writes content to
// a file when its trigger fires.
package file_write_action

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type FileWriteAction struct {
	ID      string
	Path    string
	Content string
	Append  bool
	logger  *slog.Logger
}

func NewFileWriteAction(config map[string]any, logger *slog.Logger) (*FileWriteAction, error) {
	id, _ := config["id"].(string)
	path, _ := config["path"].(string)
	content, _ := config["content"].(string)
	appendMode, _ := config["append"].(bool)

	if path == "" {
		return nil, fmt.Errorf("file_write action requires a path")
	}

	return &FileWriteAction{
		ID:      id,
		Path:    path,
		Content: content,
		Append:  appendMode,
		logger:  logger.With("module", "file_write_action", "action_id", id),
	}, nil
}

func (a *FileWriteAction) GetID() string   { return a.ID }
func (a *FileWriteAction) GetType() string { return "file_write" }

func (a *FileWriteAction) GetConfig() map[string]any {
	return map[string]any{
		"id":      a.ID,
		"path":    a.Path,
		"content": a.Content,
		"append":  a.Append,
	}
}

func (a *FileWriteAction) Execute(_ context.Context) error {
	a.logger.Info("Executing file write action", "path", a.Path, "append", a.Append)

	if err := os.MkdirAll(filepath.Dir(a.Path), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", a.Path, err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if a.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(a.Path, flags, 0600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", a.Path, err)
	}

	if _, err := f.WriteString(a.Content); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to write %s: %w", a.Path, err)
	}

	return f.Close()
}
