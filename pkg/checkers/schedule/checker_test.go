package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChecker(t *testing.T) {
	testCases := []struct {
		name    string
		config  map[string]any
		wantErr bool
	}{
		{
			name:   "every five minutes",
			config: map[string]any{"cron": "*/5 * * * *"},
		},
		{
			name:   "daily at midnight",
			config: map[string]any{"cron": "0 0 * * *"},
		},
		{
			name:   "descriptor",
			config: map[string]any{"cron": "@hourly"},
		},
		{
			name:    "missing expression",
			config:  map[string]any{},
			wantErr: true,
		},
		{
			name:    "invalid expression",
			config:  map[string]any{"cron": "not a cron"},
			wantErr: true,
		},
		{
			name:    "expression of wrong type",
			config:  map[string]any{"cron": 5},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checker, err := NewChecker(tc.config)

			if tc.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "schedule", checker.GetType())
			assert.False(t, checker.nextDueAt.IsZero())
		})
	}
}

func TestCheckerIsMet(t *testing.T) {
	checker, err := NewChecker(map[string]any{"cron": "@daily"})
	require.NoError(t, err)
	assert.False(t, checker.IsMet(), "next daily activation is in the future")

	// A persisted past deadline is met immediately after restore.
	past := time.Now().Add(-time.Minute).UnixMilli()
	restored, err := NewChecker(map[string]any{"cron": "@daily", "next_due_at": past})
	require.NoError(t, err)
	assert.True(t, restored.IsMet())
}

func TestCheckerResetAdvancesDeadline(t *testing.T) {
	past := time.Now().Add(-time.Minute).UnixMilli()
	checker, err := NewChecker(map[string]any{"cron": "@hourly", "next_due_at": past})
	require.NoError(t, err)
	require.True(t, checker.IsMet())

	checker.Reset()

	assert.False(t, checker.IsMet())
	assert.True(t, checker.nextDueAt.After(time.Now()))
	assert.LessOrEqual(t, checker.nextDueAt.Sub(time.Now().UTC()), time.Hour)
}

func TestCheckerGetConfigRoundTrip(t *testing.T) {
	checker, err := NewChecker(map[string]any{"cron": "*/10 * * * *"})
	require.NoError(t, err)

	config := checker.GetConfig()
	assert.Equal(t, "*/10 * * * *", config["cron"])

	restored, err := NewChecker(config)
	require.NoError(t, err)
	assert.Equal(t, checker.nextDueAt.UnixMilli(), restored.nextDueAt.UnixMilli())
}

func TestFactory(t *testing.T) {
	factory := NewFactory()

	assert.Equal(t, "schedule", factory.ID())
	assert.NotEmpty(t, factory.Name())
	assert.NotEmpty(t, factory.Description())

	schema := factory.Schema()
	require.NotNil(t, schema)
	assert.Equal(t, "object", schema["type"])

	condition, err := factory.Create(map[string]any{"cron": "@hourly"})
	require.NoError(t, err)
	assert.Equal(t, "schedule", condition.GetType())

	_, err = factory.Create(nil)
	assert.Error(t, err)
}
