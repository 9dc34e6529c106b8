// Package static implements the servicer for statically defined
// triggers: definition files that spell out the fire condition, expire
// condition and actions inline.
package static

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/registry"
	"github.com/marden/flint/pkg/trigger"
)

// SourceType is the trigger.type value this servicer handles.
const SourceType = "static"

type Servicer struct {
	manager  *trigger.Manager
	registry *registry.Registry
	validate *validator.Validate
	logger   *slog.Logger
}

func NewServicer(manager *trigger.Manager, reg *registry.Registry, logger *slog.Logger) *Servicer {
	return &Servicer{
		manager:  manager,
		registry: reg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("module", "static_servicer"),
	}
}

// CreateTriggerFromConfig builds a trigger from a parsed definition
// and inserts it through the manager.
func (s *Servicer) CreateTriggerFromConfig(ctx context.Context, config map[string]any) error {
	spec, err := s.parseSpec(config)
	if err != nil {
		return err
	}

	t, err := s.registry.BuildTrigger(spec)
	if err != nil {
		return fmt.Errorf("failed to build trigger '%s': %w", spec.Name, err)
	}

	if err := s.manager.Insert(ctx, t); err != nil {
		return fmt.Errorf("failed to insert trigger '%s': %w", spec.Name, err)
	}

	s.logger.Info("Created trigger from config", "trigger_id", t.ID, "trigger_name", t.Name)

	return nil
}

// Load is a no-op: static triggers are restored from persistence like
// any other trigger.
func (s *Servicer) Load(_ context.Context) error {
	return nil
}

func (s *Servicer) parseSpec(config map[string]any) (*models.TriggerSpec, error) {
	data, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trigger config: %w", err)
	}

	var spec models.TriggerSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode trigger config: %w", err)
	}

	spec.Source = SourceType
	spec.ID = 0 // ids are assigned on insert, never taken from config

	if err := s.validate.Struct(&spec); err != nil {
		return nil, fmt.Errorf("invalid trigger config: %w", err)
	}

	return &spec, nil
}
