// Package main provides the flintd trigger evaluation daemon.
package main

import (
	"context"
	"os"

	"log/slog"

	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "flintd",
		Usage:                 "Evaluate triggers and execute their actions",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			{
				Name:    "run",
				Aliases: []string{"r"},
				Usage:   "Start the trigger evaluation daemon",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "persistence",
						Usage:   "Persistence backend: a directory path, file://path or redis://addr",
						Value:   "./data",
						Sources: cli.EnvVars("FLINT_PERSISTENCE"),
					},
					&cli.StringFlag{
						Name:    "triggers-dir",
						Usage:   "Directory scanned for *.trigger definition files",
						Value:   "",
						Sources: cli.EnvVars("FLINT_TRIGGERS_DIR"),
					},
					&cli.IntFlag{
						Name:    "scan-interval",
						Usage:   "Scanner interval in milliseconds",
						Value:   60000,
						Sources: cli.EnvVars("FLINT_SCAN_INTERVAL"),
					},
					&cli.IntFlag{
						Name:  "api-port",
						Usage: "HTTP API port (0 disables the API)",
						Value: 0,
					},
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Watch the triggers directory for new definition files",
						Value: false,
					},
					&cli.BoolFlag{
						Name:  "tracing",
						Usage: "Export traces over OTLP HTTP",
						Value: false,
					},
					&cli.StringFlag{
						Name:    "log-level",
						Usage:   "Log level: debug, info, warn or error",
						Value:   "info",
						Sources: cli.EnvVars("LOG_LEVEL"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runDaemon(ctx, cmd)
				},
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List persisted triggers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "persistence",
						Usage: "Persistence backend: a directory path, file://path or redis://addr",
						Value: "./data",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return listTriggers(ctx, cmd)
				},
			},
			{
				Name:    "validate",
				Aliases: []string{"v"},
				Usage:   "Validate trigger definition files without starting the daemon",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "triggers-dir",
						Usage: "Directory scanned for *.trigger definition files",
						Value: "./triggers",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return validateTriggers(ctx, cmd)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("flintd failed", "error", err)
		os.Exit(1)
	}
}
