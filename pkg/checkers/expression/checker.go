// Package expression implements a condition evaluated from a boolean
// expression. Expressions see the time elapsed since the trigger was
// armed, the number of evaluations so far and the current wall clock.
package expression

import (
	"errors"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type Checker struct {
	expression string
	program    *vm.Program
	armedAt    time.Time
	checks     int64
}

func NewChecker(config map[string]any) (*Checker, error) {
	expression, _ := config["expression"].(string)
	if expression == "" {
		return nil, errors.New("expression checker requires an expression")
	}

	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	checker := &Checker{
		expression: expression,
		program:    program,
		armedAt:    time.Now(),
	}

	if armedAt, ok := int64Value(config, "armed_at"); ok {
		checker.armedAt = time.UnixMilli(armedAt)
	}

	if checks, ok := int64Value(config, "checks"); ok {
		checker.checks = checks
	}

	return checker, nil
}

func (c *Checker) GetType() string {
	return "expression"
}

// IsMet evaluates the expression. Evaluation errors count as unmet.
func (c *Checker) IsMet() bool {
	c.checks++
	now := time.Now()

	out, err := expr.Run(c.program, map[string]any{
		"elapsed": time.Since(c.armedAt).Seconds(),
		"checks":  c.checks,
		"hour":    now.Hour(),
		"minute":  now.Minute(),
		"weekday": int(now.Weekday()),
	})
	if err != nil {
		return false
	}

	met, ok := out.(bool)

	return ok && met
}

func (c *Checker) Reset() {
	c.armedAt = time.Now()
	c.checks = 0
}

func (c *Checker) GetConfig() map[string]any {
	return map[string]any{
		"expression": c.expression,
		"armed_at":   c.armedAt.UnixMilli(),
		"checks":     c.checks,
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
