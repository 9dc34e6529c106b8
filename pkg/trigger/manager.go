// Package trigger implements the trigger evaluation engine: a manager
// owning the authoritative trigger set and a background scanner that
// periodically evaluates fire and expire conditions.
package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/persistence"
	"github.com/marden/flint/pkg/registry"
)

// DefaultScanInterval is used when no interval is configured.
const DefaultScanInterval = 60 * time.Second

// Servicer constructs triggers from configuration for one trigger
// source type.
type Servicer interface {
	// CreateTriggerFromConfig builds and inserts triggers declared by a
	// parsed trigger definition.
	CreateTriggerFromConfig(ctx context.Context, config map[string]any) error
	// Load is invoked once during manager startup, after persisted
	// triggers have been restored.
	Load(ctx context.Context) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithScanInterval overrides the scanner interval.
func WithScanInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.interval = interval
	}
}

// WithClock injects a clock, used by tests to drive scanner cycles
// without real waits.
func WithClock(clock Clock) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// Manager coordinates the trigger store, durable persistence and the
// scanner. Every mutating operation serializes with every other one
// and with a full scanner evaluation cycle through a single mutex.
type Manager struct {
	mu sync.Mutex

	logger   *slog.Logger
	registry *registry.Registry
	store    persistence.Persistence

	interval time.Duration
	clock    Clock
	scanner  *Scanner

	triggers  map[int64]*models.Trigger
	servicers map[string]Servicer
	nextID    int64

	cancel  context.CancelFunc
	started bool
	stopped bool
}

// NewManager creates a manager. The scanner is not started until
// Start is called.
func NewManager(store persistence.Persistence, reg *registry.Registry, logger *slog.Logger, opts ...Option) (*Manager, error) {
	m := &Manager{
		logger:    logger.With("module", "trigger_manager"),
		registry:  reg,
		store:     store,
		interval:  DefaultScanInterval,
		clock:     systemClock{},
		triggers:  make(map[int64]*models.Trigger),
		servicers: make(map[string]Servicer),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.interval <= 0 {
		return nil, ErrScanIntervalNotPositive
	}

	m.scanner = newScanner(&m.mu, m.interval, m.clock, m, m.logger)

	return m, nil
}

// RegisterServicer registers the servicer handling one trigger source
// type. Each source type can be registered once.
func (m *Manager) RegisterServicer(sourceType string, servicer Servicer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.servicers[sourceType]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateServicer, sourceType)
	}

	m.servicers[sourceType] = servicer

	return nil
}

// Start restores persisted triggers (best effort), runs each
// servicer's load hook and starts the scanner loop.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()

	if m.started {
		m.mu.Unlock()

		return nil
	}

	m.started = true

	// The cancel func is published together with the started flag so a
	// concurrent Stop always finds it set.
	scanCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	maxID, err := m.store.MaxTriggerID(ctx)
	if err != nil {
		m.logger.Error("Failed to read max trigger id", "error", err)
	}

	m.nextID = maxID

	specs, err := m.store.Triggers(ctx)
	if err != nil {
		m.logger.Error("Failed to load persisted triggers", "error", err)
	}

	for _, spec := range specs {
		t, err := m.registry.BuildTrigger(spec)
		if err != nil {
			m.logger.Error("Failed to restore persisted trigger", "trigger_id", spec.ID, "error", err)

			continue
		}

		m.triggers[t.ID] = t
		m.scanner.addLocked(t)
	}

	m.logger.Info("Restored persisted triggers", "count", len(m.triggers))

	servicers := make(map[string]Servicer, len(m.servicers))
	for source, servicer := range m.servicers {
		servicers[source] = servicer
	}
	m.mu.Unlock()

	// Load hooks run outside the mutex: servicers insert triggers
	// through the public API.
	for source, servicer := range servicers {
		if err := servicer.Load(ctx); err != nil {
			m.logger.Error("Servicer load failed", "source", source, "error", err)
		}
	}

	m.mu.Lock()

	if m.stopped {
		m.mu.Unlock()

		// Stop won the race during the load hooks. The scanner never
		// launched, so release anyone blocked waiting for it.
		close(m.scanner.done)

		return nil
	}

	m.scanner.alive.Store(true)

	go m.scanner.run(scanCtx)
	m.mu.Unlock()

	m.logger.Info("Trigger manager started", "scan_interval", m.interval)

	return nil
}

// Stop shuts the scanner down and blocks until the loop has exited.
// Safe to call multiple times and from any goroutine.
func (m *Manager) Stop() {
	m.mu.Lock()

	if !m.started {
		m.mu.Unlock()

		return
	}

	alreadyStopped := m.stopped
	m.stopped = true
	cancel := m.cancel
	m.mu.Unlock()

	if !alreadyStopped {
		m.scanner.alive.Store(false)
		cancel()
	}

	<-m.scanner.done

	if !alreadyStopped {
		m.logger.Info("Trigger manager stopped")
	}
}

// Insert assigns an id if needed and adds the trigger to persistence,
// the trigger map and the scanner working set. The durable write
// happens first; on failure nothing is registered.
func (m *Manager) Insert(ctx context.Context, t *models.Trigger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.insertLocked(ctx, t)
}

func (m *Manager) insertLocked(ctx context.Context, t *models.Trigger) error {
	if t.ID == 0 {
		m.nextID++
		t.ID = m.nextID
	} else {
		if _, ok := m.triggers[t.ID]; ok {
			return persistence.NewTriggerError("Insert", t.ID, persistence.ErrTriggerExists)
		}

		if t.ID > m.nextID {
			m.nextID = t.ID
		}
	}

	if err := m.store.AddTrigger(ctx, t.Spec()); err != nil {
		return err
	}

	m.triggers[t.ID] = t
	m.scanner.addLocked(t)

	m.logger.Info("Trigger inserted", "trigger_id", t.ID, "trigger_name", t.Name)

	return nil
}

// Update replaces the registered trigger with the given one. The
// scanner entry is swapped so the evaluator never sees a trigger that
// is mutated mid-edit.
func (m *Manager) Update(ctx context.Context, t *models.Trigger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.triggers[t.ID]; !ok {
		return fmt.Errorf("%w: id %d", ErrTriggerNotFound, t.ID)
	}

	return m.updateLocked(ctx, t)
}

func (m *Manager) updateLocked(ctx context.Context, t *models.Trigger) error {
	if err := m.store.UpdateTrigger(ctx, t.Spec()); err != nil {
		return err
	}

	m.scanner.removeLocked(t.ID)
	m.scanner.addLocked(t)
	m.triggers[t.ID] = t

	return nil
}

// Remove removes the trigger with the given id from persistence, the
// scanner working set and the trigger map.
func (m *Manager) Remove(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.triggers[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrTriggerNotFound, id)
	}

	return m.removeLocked(ctx, t)
}

// RemoveTrigger removes the given trigger.
func (m *Manager) RemoveTrigger(ctx context.Context, t *models.Trigger) error {
	return m.Remove(ctx, t.ID)
}

func (m *Manager) removeLocked(ctx context.Context, t *models.Trigger) error {
	if err := m.store.RemoveTrigger(ctx, t.ID); err != nil {
		return err
	}

	delete(m.triggers, t.ID)
	m.scanner.removeLocked(t.ID)

	m.logger.Info("Trigger removed", "trigger_id", t.ID, "trigger_name", t.Name)

	return nil
}

// GetTrigger returns the registered trigger with the given id.
func (m *Manager) GetTrigger(id int64) (*models.Trigger, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.triggers[id]

	return t, ok
}

// ListTriggers returns a snapshot of the registered triggers, safe to
// iterate without holding the manager lock.
func (m *Manager) ListTriggers() []*models.Trigger {
	m.mu.Lock()
	defer m.mu.Unlock()

	triggers := make([]*models.Trigger, 0, len(m.triggers))
	for _, t := range m.triggers {
		triggers = append(triggers, t)
	}

	return triggers
}

// SupportedCheckers returns the checker capabilities known to the
// manager's registry.
func (m *Manager) SupportedCheckers() map[string]registry.CheckerFactory {
	return m.registry.SupportedCheckers()
}

// SupportedActions returns the action capabilities known to the
// manager's registry.
func (m *Manager) SupportedActions() map[string]registry.ActionFactory {
	return m.registry.SupportedActions()
}

// Scanner exposes the scanner for observability (overrun counts).
func (m *Manager) Scanner() *Scanner {
	return m.scanner
}
