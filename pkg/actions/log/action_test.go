package log_action

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogAction(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	action := NewLogAction(map[string]any{
		"id":      "a1",
		"message": "trigger fired",
		"level":   "warn",
	}, logger)

	assert.Equal(t, "a1", action.GetID())
	assert.Equal(t, "log", action.GetType())
	assert.Equal(t, "warn", action.Level)

	defaulted := NewLogAction(map[string]any{"id": "a2", "message": "x"}, logger)
	assert.Equal(t, "info", defaulted.Level, "level defaults to info")
}

func TestExecuteLogsMessage(t *testing.T) {
	testCases := []struct {
		level string
		want  string
	}{
		{"debug", "level=DEBUG"},
		{"info", "level=INFO"},
		{"warn", "level=WARN"},
		{"error", "level=ERROR"},
		{"bogus", "level=INFO"},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer

			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			action := NewLogAction(map[string]any{
				"id":      "a1",
				"message": "trigger fired",
				"level":   tc.level,
			}, logger)

			require.NoError(t, action.Execute(context.Background()))

			output := buf.String()
			assert.Contains(t, output, "trigger fired")
			assert.Contains(t, output, tc.want)
			assert.Contains(t, output, "action_id=a1")
		})
	}
}

func TestGetConfigRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	config := map[string]any{"id": "a1", "message": "hello", "level": "error"}
	action := NewLogAction(config, logger)

	assert.Equal(t, config, action.GetConfig())
}

func TestFactory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	factory := NewLogActionFactory()

	assert.Equal(t, "log", factory.ID())
	assert.NotEmpty(t, factory.Name())
	assert.NotEmpty(t, factory.Description())
	assert.NotNil(t, factory.Schema())

	action, err := factory.Create(map[string]any{"id": "a1", "message": "hi"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "a1", action.GetID())
}
