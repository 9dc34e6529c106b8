// Package registry resolves checker and action type names to the
// factories that build executable conditions and actions.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/marden/flint/pkg/models"
)

// CheckerFactory builds conditions of one checker type.
type CheckerFactory interface {
	ID() string
	Name() string
	Description() string
	Schema() map[string]any
	Create(config map[string]any) (models.Condition, error)
}

// ActionFactory builds actions of one action type.
type ActionFactory interface {
	ID() string
	Name() string
	Description() string
	Schema() map[string]any
	Create(config map[string]any, logger *slog.Logger) (models.Action, error)
}

type Registry struct {
	logger           *slog.Logger
	checkerFactories map[string]CheckerFactory
	actionFactories  map[string]ActionFactory
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:           logger,
		checkerFactories: make(map[string]CheckerFactory),
		actionFactories:  make(map[string]ActionFactory),
	}
}

func (r *Registry) RegisterChecker(factory CheckerFactory) {
	r.checkerFactories[factory.ID()] = factory
}

func (r *Registry) RegisterAction(factory ActionFactory) {
	r.actionFactories[factory.ID()] = factory
}

// CreateChecker builds a condition, validating the config against the
// factory's schema first.
func (r *Registry) CreateChecker(checkerType string, config map[string]any) (models.Condition, error) {
	factory, ok := r.checkerFactories[checkerType]
	if !ok {
		return nil, fmt.Errorf("checker type '%s' not registered", checkerType)
	}

	if err := validateConfig(factory.Schema(), config); err != nil {
		return nil, fmt.Errorf("invalid config for checker '%s': %w", checkerType, err)
	}

	return factory.Create(config)
}

// CreateAction builds an action, validating the config against the
// factory's schema first.
func (r *Registry) CreateAction(actionType string, config map[string]any) (models.Action, error) {
	factory, ok := r.actionFactories[actionType]
	if !ok {
		return nil, fmt.Errorf("action type '%s' not registered", actionType)
	}

	if err := validateConfig(factory.Schema(), config); err != nil {
		return nil, fmt.Errorf("invalid config for action '%s': %w", actionType, err)
	}

	return factory.Create(config, r.logger)
}

// SupportedCheckers returns the registered checker factories keyed by
// type name.
func (r *Registry) SupportedCheckers() map[string]CheckerFactory {
	checkers := make(map[string]CheckerFactory, len(r.checkerFactories))
	for id, factory := range r.checkerFactories {
		checkers[id] = factory
	}

	return checkers
}

// SupportedActions returns the registered action factories keyed by
// type name.
func (r *Registry) SupportedActions() map[string]ActionFactory {
	actions := make(map[string]ActionFactory, len(r.actionFactories))
	for id, factory := range r.actionFactories {
		actions[id] = factory
	}

	return actions
}
