// Package schedule implements a condition driven by a cron expression:
// it is met once the next scheduled activation has passed.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

type Checker struct {
	cronExpr  string
	schedule  cron.Schedule
	nextDueAt time.Time
}

func NewChecker(config map[string]any) (*Checker, error) {
	cronExpr, _ := config["cron"].(string)
	if cronExpr == "" {
		return nil, errors.New("schedule checker cron expression is required")
	}

	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	checker := &Checker{cronExpr: cronExpr, schedule: sched}

	if dueAt, ok := int64Value(config, "next_due_at"); ok {
		checker.nextDueAt = time.UnixMilli(dueAt)
	} else {
		checker.Reset()
	}

	return checker, nil
}

func (c *Checker) GetType() string {
	return "schedule"
}

func (c *Checker) IsMet() bool {
	return !time.Now().Before(c.nextDueAt)
}

// Reset advances the deadline to the next activation of the cron
// expression after now.
func (c *Checker) Reset() {
	c.nextDueAt = c.schedule.Next(time.Now().UTC())
}

func (c *Checker) GetConfig() map[string]any {
	return map[string]any{
		"cron":        c.cronExpr,
		"next_due_at": c.nextDueAt.UnixMilli(),
	}
}

func int64Value(config map[string]any, key string) (int64, bool) {
	switch v := config[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
