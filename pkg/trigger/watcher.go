package trigger

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchTriggerDir loads trigger definition files created in baseDir
// while the manager runs. The watcher stops when the context is
// cancelled.
func (m *Manager) WatchTriggerDir(ctx context.Context, baseDir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(baseDir); err != nil {
		_ = watcher.Close()

		return fmt.Errorf("failed to watch %s: %w", baseDir, err)
	}

	logger := m.logger.With("module", "trigger_watcher", "dir", baseDir)
	logger.Info("Watching trigger definition directory")

	go func() {
		defer func() {
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if !event.Op.Has(fsnotify.Create) || !isTriggerFileName(filepath.Base(event.Name)) {
					continue
				}

				if err := m.LoadTriggerFile(ctx, event.Name); err != nil {
					logger.Error("Failed to load trigger file", "file", event.Name, "error", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				logger.Error("Watcher error", "error", err)
			}
		}
	}()

	return nil
}
