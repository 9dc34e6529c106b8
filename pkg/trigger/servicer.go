package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TriggerSuffix identifies trigger definition files.
const TriggerSuffix = ".trigger"

// LoadTriggersFromDir scans a directory for trigger definition files
// and routes each to the servicer registered for its declared type.
// Per-file failures are collected; the scan continues and the combined
// error is returned at the end.
func (m *Manager) LoadTriggersFromDir(ctx context.Context, baseDir string) error {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return fmt.Errorf("failed to read trigger dir %s: %w", baseDir, err)
	}

	var errs []error

	for _, entry := range entries {
		if !isTriggerFile(entry) {
			continue
		}

		if err := m.LoadTriggerFile(ctx, filepath.Join(baseDir, entry.Name())); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name(), err))
		}
	}

	return errors.Join(errs...)
}

// isTriggerFile accepts regular files with an accepted name.
func isTriggerFile(entry os.DirEntry) bool {
	return entry.Type().IsRegular() && isTriggerFileName(entry.Name())
}

// isTriggerFileName accepts non-hidden names longer than the trigger
// suffix and ending with it. Shared by the directory scan and the
// runtime watcher so both apply the same filter.
func isTriggerFileName(name string) bool {
	return !strings.HasPrefix(name, ".") &&
		len(name) > len(TriggerSuffix) &&
		strings.HasSuffix(name, TriggerSuffix)
}

// LoadTriggerFile parses one trigger definition file and delegates
// creation to the servicer for its declared type.
func (m *Manager) LoadTriggerFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read trigger file: %w", err)
	}

	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse trigger file: %w", err)
	}

	triggerType, _ := config["trigger.type"].(string)
	if triggerType == "" {
		return fmt.Errorf("trigger definition is missing the trigger.type key")
	}

	m.mu.Lock()
	servicer, ok := m.servicers[triggerType]
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedTriggerType, triggerType)
	}

	return servicer.CreateTriggerFromConfig(ctx, config)
}
