package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	file_write_action "github.com/marden/flint/pkg/actions/file_write"
	http_action "github.com/marden/flint/pkg/actions/http_request"
	kafka_action "github.com/marden/flint/pkg/actions/kafka"
	log_action "github.com/marden/flint/pkg/actions/log"
	"github.com/marden/flint/pkg/checkers/elapsed"
	"github.com/marden/flint/pkg/checkers/expression"
	"github.com/marden/flint/pkg/checkers/schedule"
	"github.com/marden/flint/pkg/log"
	"github.com/marden/flint/pkg/otelhelper"
	"github.com/marden/flint/pkg/persistence"
	filepersistence "github.com/marden/flint/pkg/persistence/file"
	redispersistence "github.com/marden/flint/pkg/persistence/redis"
	"github.com/marden/flint/pkg/registry"
	"github.com/marden/flint/pkg/servicers/static"
	"github.com/marden/flint/pkg/trigger"
	"github.com/marden/flint/pkg/web"
)

func runDaemon(ctx context.Context, cmd *cli.Command) error {
	log.Setup(cmd.String("log-level"))

	serviceID := fmt.Sprintf("flintd-%s", uuid.New().String()[:8])
	logger := log.WithModule("flintd").With("service_id", serviceID)

	logger.Info("Starting trigger evaluation daemon")

	if cmd.Bool("tracing") {
		shutdown, err := otelhelper.Setup(ctx, "flintd", serviceID)
		if err != nil {
			return fmt.Errorf("failed to setup tracing: %w", err)
		}

		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("Failed to shutdown tracer provider", "error", err)
			}
		}()
	}

	store, err := setupPersistence(cmd.String("persistence"))
	if err != nil {
		return err
	}

	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("Failed to close persistence", "error", err)
		}
	}()

	reg := setupRegistry()

	interval := time.Duration(cmd.Int("scan-interval")) * time.Millisecond

	manager, err := trigger.NewManager(store, reg, logger, trigger.WithScanInterval(interval))
	if err != nil {
		return fmt.Errorf("failed to create trigger manager: %w", err)
	}

	servicer := static.NewServicer(manager, reg, logger)
	if err := manager.RegisterServicer(static.SourceType, servicer); err != nil {
		return err
	}

	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start trigger manager: %w", err)
	}

	if dir := cmd.String("triggers-dir"); dir != "" {
		if err := manager.LoadTriggersFromDir(ctx, dir); err != nil {
			logger.Error("Failed to load trigger definitions", "dir", dir, "error", err)
		}

		if cmd.Bool("watch") {
			if err := manager.WatchTriggerDir(ctx, dir); err != nil {
				logger.Error("Failed to watch trigger directory", "dir", dir, "error", err)
			}
		}
	}

	if port := cmd.Int("api-port"); port > 0 {
		api := web.NewAPI(manager, reg, store)

		go func() {
			if err := api.Start(port); err != nil {
				logger.Error("API server failed", "error", err)
			}
		}()

		logger.Info("API server listening", "port", port)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signals:
		logger.Info("Received signal, shutting down", "signal", sig)
	case <-ctx.Done():
	}

	manager.Stop()

	return nil
}

// setupPersistence selects the backend from the configured URL: a
// redis:// URL selects redis, anything else is a file system root.
func setupPersistence(url string) (persistence.Persistence, error) {
	if strings.HasPrefix(url, "redis://") {
		return redispersistence.NewPersistence(url)
	}

	return filepersistence.NewPersistence(url), nil
}

// setupRegistry registers the built-in checker and action types.
func setupRegistry() *registry.Registry {
	reg := registry.NewRegistry(log.WithModule("registry"))

	reg.RegisterChecker(elapsed.NewFactory())
	reg.RegisterChecker(schedule.NewFactory())
	reg.RegisterChecker(expression.NewFactory())

	reg.RegisterAction(log_action.NewLogActionFactory())
	reg.RegisterAction(http_action.NewHTTPRequestActionFactory())
	reg.RegisterAction(file_write_action.NewFileWriteActionFactory())
	reg.RegisterAction(kafka_action.NewKafkaPublishActionFactory())

	return reg
}
