// Package redis provides redis-backed persistence for trigger specs.
// Specs are stored as JSON values in a single hash keyed by trigger id.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/persistence"
)

const triggersKey = "flint:triggers"

// Persistence implements persistence.Persistence on a redis hash.
type Persistence struct {
	client *redis.Client
}

// NewPersistence connects to redis using a redis:// URL.
func NewPersistence(url string) (*Persistence, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return &Persistence{client: redis.NewClient(opts)}, nil
}

func field(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Triggers loads every stored trigger spec.
func (rp *Persistence) Triggers(ctx context.Context) ([]*models.TriggerSpec, error) {
	values, err := rp.client.HGetAll(ctx, triggersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load triggers: %w", err)
	}

	specs := make([]*models.TriggerSpec, 0, len(values))

	for id, raw := range values {
		var spec models.TriggerSpec
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			return nil, fmt.Errorf("failed to parse trigger %s: %w", id, err)
		}

		specs = append(specs, &spec)
	}

	return specs, nil
}

// AddTrigger stores a new trigger spec. Fails when the id is taken.
func (rp *Persistence) AddTrigger(ctx context.Context, spec *models.TriggerSpec) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return persistence.NewTriggerError("Add", spec.ID, err)
	}

	set, err := rp.client.HSetNX(ctx, triggersKey, field(spec.ID), data).Result()
	if err != nil {
		return persistence.NewTriggerError("Add", spec.ID, err)
	}

	if !set {
		return persistence.NewTriggerError("Add", spec.ID, persistence.ErrTriggerExists)
	}

	return nil
}

// UpdateTrigger overwrites the stored spec for an existing trigger.
func (rp *Persistence) UpdateTrigger(ctx context.Context, spec *models.TriggerSpec) error {
	exists, err := rp.client.HExists(ctx, triggersKey, field(spec.ID)).Result()
	if err != nil {
		return persistence.NewTriggerError("Update", spec.ID, err)
	}

	if !exists {
		return persistence.NewTriggerError("Update", spec.ID, persistence.ErrTriggerNotFound)
	}

	data, err := json.Marshal(spec)
	if err != nil {
		return persistence.NewTriggerError("Update", spec.ID, err)
	}

	if err := rp.client.HSet(ctx, triggersKey, field(spec.ID), data).Err(); err != nil {
		return persistence.NewTriggerError("Update", spec.ID, err)
	}

	return nil
}

// RemoveTrigger deletes the stored spec for the given id.
func (rp *Persistence) RemoveTrigger(ctx context.Context, id int64) error {
	removed, err := rp.client.HDel(ctx, triggersKey, field(id)).Result()
	if err != nil {
		return persistence.NewTriggerError("Remove", id, err)
	}

	if removed == 0 {
		return persistence.NewTriggerError("Remove", id, persistence.ErrTriggerNotFound)
	}

	return nil
}

// MaxTriggerID returns the highest stored trigger id.
func (rp *Persistence) MaxTriggerID(ctx context.Context) (int64, error) {
	ids, err := rp.client.HKeys(ctx, triggersKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list trigger ids: %w", err)
	}

	var maxID int64

	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed trigger id %q: %w", raw, err)
		}

		if id > maxID {
			maxID = id
		}
	}

	return maxID, nil
}

// HealthCheck pings the redis server.
func (rp *Persistence) HealthCheck(ctx context.Context) error {
	return rp.client.Ping(ctx).Err()
}

// Close releases the redis connection pool.
func (rp *Persistence) Close(_ context.Context) error {
	return rp.client.Close()
}
