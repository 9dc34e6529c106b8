// Package file provides file-based persistence for trigger specs. Each
// trigger is stored as one JSON document under <root>/triggers.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/persistence"
)

// Persistence implements persistence.Persistence on the file system.
type Persistence struct {
	root string
}

// NewPersistence creates a file-backed store rooted at the given
// directory. A "file://" prefix is stripped.
func NewPersistence(root string) *Persistence {
	return &Persistence{root: strings.Replace(root, "file://", "", 1)}
}

func (fp *Persistence) triggersDir() string {
	return path.Join(fp.root, "triggers")
}

func (fp *Persistence) triggerPath(id int64) string {
	return path.Join(fp.triggersDir(), strconv.FormatInt(id, 10)+".json")
}

// Triggers loads every stored trigger spec.
func (fp *Persistence) Triggers(_ context.Context) ([]*models.TriggerSpec, error) {
	if _, err := os.Stat(fp.triggersDir()); os.IsNotExist(err) {
		return []*models.TriggerSpec{}, nil
	}

	jsonFiles, err := fs.Glob(os.DirFS(fp.triggersDir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list trigger files: %w", err)
	}

	specs := make([]*models.TriggerSpec, 0, len(jsonFiles))

	for _, name := range jsonFiles {
		data, err := os.ReadFile(path.Join(fp.triggersDir(), name))
		if err != nil {
			return nil, fmt.Errorf("failed to read trigger file %s: %w", name, err)
		}

		var spec models.TriggerSpec
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("failed to parse trigger file %s: %w", name, err)
		}

		specs = append(specs, &spec)
	}

	return specs, nil
}

// AddTrigger stores a new trigger spec. Fails when the id is taken.
func (fp *Persistence) AddTrigger(_ context.Context, spec *models.TriggerSpec) error {
	if err := os.MkdirAll(fp.triggersDir(), 0750); err != nil {
		return persistence.NewTriggerError("Add", spec.ID, err)
	}

	if _, err := os.Stat(fp.triggerPath(spec.ID)); err == nil {
		return persistence.NewTriggerError("Add", spec.ID, persistence.ErrTriggerExists)
	}

	return fp.write("Add", spec)
}

// UpdateTrigger overwrites the stored spec for an existing trigger.
func (fp *Persistence) UpdateTrigger(_ context.Context, spec *models.TriggerSpec) error {
	if _, err := os.Stat(fp.triggerPath(spec.ID)); os.IsNotExist(err) {
		return persistence.NewTriggerError("Update", spec.ID, persistence.ErrTriggerNotFound)
	}

	return fp.write("Update", spec)
}

// RemoveTrigger deletes the stored spec for the given id.
func (fp *Persistence) RemoveTrigger(_ context.Context, id int64) error {
	err := os.Remove(fp.triggerPath(id))
	if err != nil && os.IsNotExist(err) {
		return persistence.NewTriggerError("Remove", id, persistence.ErrTriggerNotFound)
	}

	if err != nil {
		return persistence.NewTriggerError("Remove", id, err)
	}

	return nil
}

// MaxTriggerID returns the highest stored trigger id.
func (fp *Persistence) MaxTriggerID(ctx context.Context) (int64, error) {
	specs, err := fp.Triggers(ctx)
	if err != nil {
		return 0, err
	}

	var maxID int64
	for _, spec := range specs {
		if spec.ID > maxID {
			maxID = spec.ID
		}
	}

	return maxID, nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close is a no-op for file persistence.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

func (fp *Persistence) write(op string, spec *models.TriggerSpec) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return persistence.NewTriggerError(op, spec.ID, err)
	}

	if err := os.WriteFile(fp.triggerPath(spec.ID), data, 0600); err != nil {
		return persistence.NewTriggerError(op, spec.ID, err)
	}

	return nil
}
