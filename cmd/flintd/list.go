package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
)

func listTriggers(ctx context.Context, cmd *cli.Command) error {
	store, err := setupPersistence(cmd.String("persistence"))
	if err != nil {
		return err
	}

	defer func() {
		_ = store.Close(context.Background())
	}()

	specs, err := store.Triggers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load triggers: %w", err)
	}

	if len(specs) == 0 {
		fmt.Println("No triggers found")

		return nil
	}

	fmt.Printf("%-6s %-30s %-10s %-12s %-8s %s\n", "ID", "NAME", "SOURCE", "FIRE", "ACTIONS", "POLICY")

	for _, spec := range specs {
		policy := "remove"
		if spec.ResetOnFire {
			policy = "reset"
		}

		fmt.Printf("%-6d %-30s %-10s %-12s %-8d %s\n",
			spec.ID, spec.Name, spec.Source, spec.FireCondition.Type, len(spec.Actions), policy)
	}

	return nil
}
