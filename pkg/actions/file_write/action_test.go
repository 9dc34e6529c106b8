package file_write_action

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestNewFileWriteAction(t *testing.T) {
	action, err := NewFileWriteAction(map[string]any{
		"id":      "a1",
		"path":    "/tmp/out.txt",
		"content": "hello",
		"append":  true,
	}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "a1", action.GetID())
	assert.Equal(t, "file_write", action.GetType())
	assert.True(t, action.Append)

	_, err = NewFileWriteAction(map[string]any{"id": "a2"}, testLogger())
	assert.Error(t, err, "path is required")
}

func TestExecuteWritesFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "out.txt")

	action, err := NewFileWriteAction(map[string]any{
		"id":      "a1",
		"path":    target,
		"content": "fired\n",
	}, testLogger())
	require.NoError(t, err)

	require.NoError(t, action.Execute(context.Background()))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "fired\n", string(data))
}

func TestExecuteTruncatesByDefault(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")

	action, err := NewFileWriteAction(map[string]any{
		"id":      "a1",
		"path":    target,
		"content": "second",
	}, testLogger())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(target, []byte("first first first"), 0o600))
	require.NoError(t, action.Execute(context.Background()))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestExecuteAppends(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")

	action, err := NewFileWriteAction(map[string]any{
		"id":      "a1",
		"path":    target,
		"content": "line\n",
		"append":  true,
	}, testLogger())
	require.NoError(t, err)

	require.NoError(t, action.Execute(context.Background()))
	require.NoError(t, action.Execute(context.Background()))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "line\nline\n", string(data))
}

func TestGetConfigRoundTrip(t *testing.T) {
	config := map[string]any{
		"id":      "a1",
		"path":    "/tmp/out.txt",
		"content": "hello",
		"append":  true,
	}

	action, err := NewFileWriteAction(config, testLogger())
	require.NoError(t, err)
	assert.Equal(t, config, action.GetConfig())
}

func TestFactory(t *testing.T) {
	factory := NewFileWriteActionFactory()

	assert.Equal(t, "file_write", factory.ID())
	assert.NotEmpty(t, factory.Name())
	assert.NotEmpty(t, factory.Description())
	assert.NotNil(t, factory.Schema())

	action, err := factory.Create(map[string]any{"id": "a1", "path": "/tmp/out.txt"}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "a1", action.GetID())

	_, err = factory.Create(nil, testLogger())
	assert.Error(t, err)
}
