package check

import (
	"context"
	"fmt"
	"log/slog"

	"annolint/internal/imagery"
	"annolint/internal/logging"
	"annolint/internal/task"
)

// Evaluator runs a set of checks over every task in a batch and aggregates
// the flagged issues into one report.
type Evaluator struct {
	checks []Check
	log    *slog.Logger
}

// NewEvaluator returns an evaluator over the given checks, in order.
func NewEvaluator(checks ...Check) *Evaluator {
	return &Evaluator{checks: checks, log: logging.New("evaluator")}
}

// NewDefaultEvaluator wires the three standard checks with their default
// thresholds. Image access for the color check goes through src.
func NewDefaultEvaluator(src imagery.Source, opts ...Option) *Evaluator {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	occ := NewOcclusionCheck(cfg.occlusionThreshold)
	occ.DoubleCount = cfg.doubleCount
	return NewEvaluator(occ, NewStrayClickCheck(), NewColorCheck(src))
}

// Option configures NewDefaultEvaluator.
type Option func(*options)

type options struct {
	occlusionThreshold float64
	doubleCount        bool
}

func defaultOptions() options {
	return options{occlusionThreshold: DefaultOcclusionThreshold}
}

// WithOcclusionThreshold overrides the occlusion percentage threshold.
func WithOcclusionThreshold(pct float64) Option {
	return func(o *options) { o.occlusionThreshold = pct }
}

// WithDoubleCount restores the ordered-pair behavior where each overlapping
// pair is flagged twice, once per direction. Off by default.
func WithDoubleCount() Option {
	return func(o *options) { o.doubleCount = true }
}

// Evaluate runs every check over every task, sequentially and in order.
// A check finding issues never short-circuits the remaining checks; a check
// returning an error aborts the run with no partial report, since a report
// missing an unknown number of findings would be misleading.
func (e *Evaluator) Evaluate(ctx context.Context, tasks []task.Task) (*Report, error) {
	flagged := []Issue{}
	for i := range tasks {
		t := &tasks[i]
		for _, c := range e.checks {
			issues, err := c.Evaluate(ctx, t)
			if err != nil {
				return nil, fmt.Errorf("check %s on task %s: %w", c.Name(), t.ID, err)
			}
			if len(issues) > 0 {
				e.log.Debug("check flagged issues",
					"check", string(c.Name()), "task", t.ID, "issues", len(issues))
			}
			flagged = append(flagged, issues...)
		}
	}

	return &Report{
		Count:   len(flagged),
		Types:   AllTypes(),
		Flagged: flagged,
	}, nil
}
