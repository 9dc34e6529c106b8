package trigger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/marden/flint/pkg/models"
	"github.com/marden/flint/pkg/otelhelper"
)

var tracer = otel.Tracer("github.com/marden/flint/pkg/trigger")

// lifecycle is the slice of the manager the scanner calls back into
// when a trigger fires or expires. Both methods assume the shared
// mutex is already held.
type lifecycle interface {
	updateLocked(ctx context.Context, t *models.Trigger) error
	removeLocked(ctx context.Context, t *models.Trigger) error
}

// Scanner periodically evaluates its working set of triggers. A full
// evaluation pass and any structural mutation of the working set are
// mutually exclusive: both run under the mutex shared with the manager.
type Scanner struct {
	mu        *sync.Mutex
	interval  time.Duration
	clock     Clock
	lifecycle lifecycle
	logger    *slog.Logger

	working map[int64]*models.Trigger

	alive    atomic.Bool
	overruns atomic.Int64
	done     chan struct{}
}

func newScanner(mu *sync.Mutex, interval time.Duration, clock Clock, lc lifecycle, logger *slog.Logger) *Scanner {
	return &Scanner{
		mu:        mu,
		interval:  interval,
		clock:     clock,
		lifecycle: lc,
		logger:    logger.With("module", "scanner"),
		working:   make(map[int64]*models.Trigger),
		done:      make(chan struct{}),
	}
}

func (s *Scanner) addLocked(t *models.Trigger) {
	s.working[t.ID] = t
}

func (s *Scanner) removeLocked(id int64) {
	delete(s.working, id)
}

func (s *Scanner) containsLocked(id int64) bool {
	_, ok := s.working[id]

	return ok
}

// Overruns counts the cycles that took longer than the scan interval.
func (s *Scanner) Overruns() int64 {
	return s.overruns.Load()
}

// run is the evaluation loop. The liveness flag is observed at the top
// of each cycle so shutdown never interrupts a pass mid-evaluation.
func (s *Scanner) run(ctx context.Context) {
	defer close(s.done)

	for s.alive.Load() {
		cycleStart := s.clock.Now()

		s.mu.Lock()
		s.checkAllTriggers(ctx)
		s.mu.Unlock()

		remaining := s.interval - s.clock.Now().Sub(cycleStart)
		if remaining < 0 {
			s.overruns.Add(1)
			s.logger.Warn("Trigger scanner is too busy", "overrun", -remaining)

			// An overrun skips the wait, not the cancellation check.
			select {
			case <-ctx.Done():
				return
			default:
			}

			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(remaining):
		}
	}
}

func (s *Scanner) checkAllTriggers(ctx context.Context) {
	// Firing mutates the working set mid-pass: a reset re-registers the
	// trigger under the same id, and ranging the live map could then
	// yield it a second time. The snapshot pins one evaluation per
	// trigger per cycle.
	snapshot := make([]*models.Trigger, 0, len(s.working))
	for _, t := range s.working {
		snapshot = append(snapshot, t)
	}

	for _, t := range snapshot {
		if _, ok := s.working[t.ID]; !ok {
			continue
		}

		s.checkTrigger(ctx, t)
	}
}

// checkTrigger evaluates one trigger. Any failure, including a panic
// from a condition or action, is logged and confined to this trigger
// so the rest of the cycle proceeds.
func (s *Scanner) checkTrigger(ctx context.Context, t *models.Trigger) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic while evaluating trigger", "trigger_id", t.ID, "trigger_name", t.Name, "panic", r)
		}
	}()

	switch {
	case t.FireCondition.IsMet():
		if err := s.onTriggerFire(ctx, t); err != nil {
			s.logger.Error("Trigger firing failed", "trigger_id", t.ID, "trigger_name", t.Name, "error", err)
		}
	case t.ExpireCondition != nil && t.ExpireCondition.IsMet():
		if err := s.onTriggerExpire(ctx, t); err != nil {
			s.logger.Error("Trigger expiration failed", "trigger_id", t.ID, "trigger_name", t.Name, "error", err)
		}
	}
}

// outcome is the post-firing disposition of a trigger.
type outcome int

const (
	outcomeKeep outcome = iota
	outcomeReset
	outcomeRemove
)

// fireOutcome decides what happens to a trigger after a firing. A
// partial action failure keeps the trigger armed untouched, so it is
// re-attempted on the next cycle.
func fireOutcome(allSucceeded, resetPolicy bool) outcome {
	if !allSucceeded {
		return outcomeKeep
	}

	if resetPolicy {
		return outcomeReset
	}

	return outcomeRemove
}

func (s *Scanner) onTriggerFire(ctx context.Context, t *models.Trigger) error {
	ctx, span := tracer.Start(ctx, "trigger.fire")
	defer span.End()

	span.SetAttributes(
		attribute.Int64(otelhelper.TriggerIDKey, t.ID),
		attribute.String(otelhelper.TriggerNameKey, t.Name),
	)

	s.logger.Info("Trigger fired", "trigger_id", t.ID, "trigger_name", t.Name)

	results := s.executeActions(ctx, t)

	switch fireOutcome(models.Succeeded(results), t.ResetOnFire) {
	case outcomeKeep:
		failed := results[len(results)-1]
		err := &ActionError{
			TriggerID:  t.ID,
			ActionID:   failed.ActionID,
			ActionType: failed.ActionType,
			Err:        failed.Err,
		}
		span.SetAttributes(
			attribute.String(otelhelper.ActionIDKey, failed.ActionID),
			attribute.String(otelhelper.ActionTypeKey, failed.ActionType),
		)
		otelhelper.SetError(span, err)

		return err
	case outcomeReset:
		t.ResetConditions()

		return s.lifecycle.updateLocked(ctx, t)
	default:
		return s.lifecycle.removeLocked(ctx, t)
	}
}

func (s *Scanner) onTriggerExpire(ctx context.Context, t *models.Trigger) error {
	s.logger.Info("Trigger expired", "trigger_id", t.ID, "trigger_name", t.Name)

	if t.ResetOnExpire {
		t.ResetConditions()

		return s.lifecycle.updateLocked(ctx, t)
	}

	return s.lifecycle.removeLocked(ctx, t)
}

// executeActions runs the trigger's actions in declared order, halting
// at the first failure. Every attempted action gets a result entry.
func (s *Scanner) executeActions(ctx context.Context, t *models.Trigger) []models.ActionResult {
	results := make([]models.ActionResult, 0, len(t.Actions))

	for _, action := range t.Actions {
		err := action.Execute(ctx)
		results = append(results, models.ActionResult{
			ActionID:   action.GetID(),
			ActionType: action.GetType(),
			Err:        err,
		})

		if err != nil {
			break
		}
	}

	return results
}
