package static

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	log_action "github.com/marden/flint/pkg/actions/log"
	"github.com/marden/flint/pkg/checkers/elapsed"
	"github.com/marden/flint/pkg/persistence/file"
	"github.com/marden/flint/pkg/registry"
	"github.com/marden/flint/pkg/trigger"
)

func setupServicer(t *testing.T) (*Servicer, *trigger.Manager) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	reg := registry.NewRegistry(logger)
	reg.RegisterChecker(elapsed.NewFactory())
	reg.RegisterAction(log_action.NewLogActionFactory())

	manager, err := trigger.NewManager(file.NewPersistence(t.TempDir()), reg, logger)
	require.NoError(t, err)

	return NewServicer(manager, reg, logger), manager
}

func TestCreateTriggerFromConfig(t *testing.T) {
	servicer, manager := setupServicer(t)

	config := map[string]any{
		"trigger.type":  "static",
		"name":          "heartbeat",
		"reset_on_fire": true,
		"fire_condition": map[string]any{
			"type":          "elapsed",
			"configuration": map[string]any{"period_ms": float64(30_000)},
		},
		"actions": []any{
			map[string]any{
				"id":            "beat",
				"type":          "log",
				"configuration": map[string]any{"message": "still alive"},
			},
		},
	}

	require.NoError(t, servicer.CreateTriggerFromConfig(context.Background(), config))

	triggers := manager.ListTriggers()
	require.Len(t, triggers, 1)
	assert.Equal(t, "heartbeat", triggers[0].Name)
	assert.Equal(t, SourceType, triggers[0].Source)
	assert.True(t, triggers[0].ResetOnFire)
	require.Len(t, triggers[0].Actions, 1)
	assert.Equal(t, "beat", triggers[0].Actions[0].GetID())
}

func TestCreateTriggerFromConfigIgnoresDeclaredID(t *testing.T) {
	servicer, manager := setupServicer(t)

	config := map[string]any{
		"trigger.type": "static",
		"id":           float64(9999),
		"name":         "renumbered",
		"fire_condition": map[string]any{
			"type":          "elapsed",
			"configuration": map[string]any{"period_ms": float64(1000)},
		},
	}

	require.NoError(t, servicer.CreateTriggerFromConfig(context.Background(), config))

	triggers := manager.ListTriggers()
	require.Len(t, triggers, 1)
	assert.Equal(t, int64(1), triggers[0].ID, "declared ids are replaced by assigned ones")
}

func TestCreateTriggerFromConfigFailures(t *testing.T) {
	testCases := []struct {
		name   string
		config map[string]any
	}{
		{
			name:   "missing name",
			config: map[string]any{"trigger.type": "static"},
		},
		{
			name: "name too short",
			config: map[string]any{
				"trigger.type": "static",
				"name":         "ab",
				"fire_condition": map[string]any{
					"type":          "elapsed",
					"configuration": map[string]any{"period_ms": float64(1000)},
				},
			},
		},
		{
			name: "unknown checker type",
			config: map[string]any{
				"trigger.type":   "static",
				"name":           "bad-checker",
				"fire_condition": map[string]any{"type": "nonexistent"},
			},
		},
		{
			name: "config not a valid spec",
			config: map[string]any{
				"trigger.type": "static",
				"name":         "bad-shape",
				"fire_condition": map[string]any{
					"type":          "elapsed",
					"configuration": "not a map",
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			servicer, manager := setupServicer(t)

			err := servicer.CreateTriggerFromConfig(context.Background(), tc.config)
			assert.Error(t, err)
			assert.Empty(t, manager.ListTriggers())
		})
	}
}

func TestLoadIsNoOp(t *testing.T) {
	servicer, _ := setupServicer(t)
	assert.NoError(t, servicer.Load(context.Background()))
}
