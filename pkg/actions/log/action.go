// Package log_action provides an action that writes a message to the
// process logger when its trigger fires.
package log_action

import (
	"context"
	"log/slog"
)

type LogAction struct {
	ID      string
	Message string
	Level   string
	logger  *slog.Logger
}

func NewLogAction(config map[string]any, logger *slog.Logger) *LogAction {
	id, _ := config["id"].(string)
	message, _ := config["message"].(string)
	level, _ := config["level"].(string)

	if level == "" {
		level = "info"
	}

	return &LogAction{
		ID:      id,
		Message: message,
		Level:   level,
		logger:  logger.With("module", "log_action", "action_id", id),
	}
}

func (a *LogAction) GetID() string   { return a.ID }
func (a *LogAction) GetType() string { return "log" }

func (a *LogAction) GetConfig() map[string]any {
	return map[string]any{
		"id":      a.ID,
		"message": a.Message,
		"level":   a.Level,
	}
}

func (a *LogAction) Execute(ctx context.Context) error {
	var level slog.Level

	switch a.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	a.logger.Log(ctx, level, a.Message)

	return nil
}
