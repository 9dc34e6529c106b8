// Package elapsed implements a condition that is met once a fixed
// period has passed since the trigger was armed or last reset.
package elapsed

import (
	"errors"
	"time"
)

type Checker struct {
	period      time.Duration
	nextCheckAt time.Time
}

func NewChecker(config map[string]any) (*Checker, error) {
	periodMs, ok := int64Value(config, "period_ms")
	if !ok || periodMs <= 0 {
		return nil, errors.New("elapsed checker requires a positive period_ms")
	}

	checker := &Checker{period: time.Duration(periodMs) * time.Millisecond}

	// A persisted deadline survives restarts; a fresh checker arms now.
	if deadline, ok := int64Value(config, "next_check_at"); ok {
		checker.nextCheckAt = time.UnixMilli(deadline)
	} else {
		checker.Reset()
	}

	return checker, nil
}

func (c *Checker) GetType() string {
	return "elapsed"
}

func (c *Checker) IsMet() bool {
	return !time.Now().Before(c.nextCheckAt)
}

func (c *Checker) Reset() {
	c.nextCheckAt = time.Now().Add(c.period)
}

func (c *Checker) GetConfig() map[string]any {
	return map[string]any{
		"period_ms":     c.period.Milliseconds(),
		"next_check_at": c.nextCheckAt.UnixMilli(),
	}
}

// int64Value reads an integer config entry, tolerating the numeric
// types JSON decoding produces.
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
