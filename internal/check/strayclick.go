package check

import (
	"context"
	"math"

	"annolint/internal/task"
)

// strayClickMaxSize is the box size at or below which (on both axes) an
// annotation is considered an accidental click.
const strayClickMaxSize = 5

// StrayClickCheck flags annotations that are implausibly small or carry
// fractional pixel geometry: likely accidental clicks, not deliberate boxes.
type StrayClickCheck struct{}

// NewStrayClickCheck returns the check.
func NewStrayClickCheck() *StrayClickCheck { return &StrayClickCheck{} }

// Name implements Check.
func (c *StrayClickCheck) Name() Type { return TypeStrayClick }

// Evaluate implements Check. Purely per-annotation, O(n).
func (c *StrayClickCheck) Evaluate(ctx context.Context, t *task.Task) ([]Issue, error) {
	var issues []Issue
	for _, a := range t.Annotations {
		tiny := a.Width <= strayClickMaxSize && a.Height <= strayClickMaxSize
		if tiny || !isIntegral(a.Width) || !isIntegral(a.Height) {
			issues = append(issues, Issue{
				Type:        TypeStrayClick,
				Severity:    SeverityStructural,
				Annotations: []string{a.ID},
				TaskID:      t.ID,
				Explanation: "Stray click",
			})
		}
	}
	return issues, nil
}

func isIntegral(f float64) bool { return f == math.Trunc(f) }
