package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	cli "github.com/urfave/cli/v3"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/registry"
	"github.com/marden/flint/pkg/trigger"
)

// validateTriggers dry-builds every trigger definition in the
// configured directory and reports all failures.
func validateTriggers(_ context.Context, cmd *cli.Command) error {
	baseDir := cmd.String("triggers-dir")

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return fmt.Errorf("failed to read trigger dir %s: %w", baseDir, err)
	}

	reg := setupRegistry()
	validate := validator.New(validator.WithRequiredStructEnabled())

	var checked, failed int

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, ".") ||
			len(name) <= len(trigger.TriggerSuffix) || !strings.HasSuffix(name, trigger.TriggerSuffix) {
			continue
		}

		checked++

		if err := validateTriggerFile(filepath.Join(baseDir, name), validate, reg); err != nil {
			failed++

			fmt.Printf("FAIL  %s: %v\n", name, err)

			continue
		}

		fmt.Printf("OK    %s\n", name)
	}

	fmt.Printf("\n%d definitions checked, %d invalid\n", checked, failed)

	if failed > 0 {
		return fmt.Errorf("%d invalid trigger definitions", failed)
	}

	return nil
}

func validateTriggerFile(path string, validate *validator.Validate, reg *registry.Registry) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if triggerType, _ := config["trigger.type"].(string); triggerType == "" {
		return fmt.Errorf("missing trigger.type key")
	}

	specData, err := json.Marshal(config)
	if err != nil {
		return err
	}

	var spec models.TriggerSpec
	if err := json.Unmarshal(specData, &spec); err != nil {
		return err
	}

	if err := validate.Struct(&spec); err != nil {
		return err
	}

	if _, err := reg.BuildTrigger(&spec); err != nil {
		return err
	}

	return nil
}
