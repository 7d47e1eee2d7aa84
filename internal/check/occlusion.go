package check

import (
	"context"
	"log/slog"
	"math"

	"annolint/internal/logging"
	"annolint/internal/task"
)

// DefaultOcclusionThreshold is the occlusion percentage above which a pair
// of boxes both claiming "0%" occlusion is flagged.
const DefaultOcclusionThreshold = 40

// OcclusionCheck flags annotation pairs whose boxes overlap beyond a
// threshold while both self-report zero occlusion.
type OcclusionCheck struct {
	// Threshold is the minimum occlusion percentage to flag.
	Threshold float64
	// DoubleCount evaluates every ordered pair instead of every unordered
	// pair, emitting duplicate issues with swapped annotation order. Kept
	// for parity with legacy audit output; leave off for new runs.
	DoubleCount bool

	log *slog.Logger
}

// NewOcclusionCheck returns the check with the given threshold.
func NewOcclusionCheck(threshold float64) *OcclusionCheck {
	return &OcclusionCheck{Threshold: threshold, log: logging.New("check.occlusion")}
}

// Name implements Check.
func (c *OcclusionCheck) Name() Type { return TypeOcclusion }

// Evaluate implements Check.
func (c *OcclusionCheck) Evaluate(ctx context.Context, t *task.Task) ([]Issue, error) {
	var issues []Issue
	anns := t.Annotations

	flag := func(a, b *task.Annotation) {
		pct, ok := occlusionPercentage(a, b)
		if !ok {
			c.log.Warn("degenerate box geometry, skipping pair",
				"task", t.ID, "annotations", []string{a.ID, b.ID})
			return
		}
		if pct > c.Threshold &&
			a.Attributes.Occlusion == task.OcclusionZero &&
			b.Attributes.Occlusion == task.OcclusionZero {
			issues = append(issues, Issue{
				Type:        TypeOcclusion,
				Severity:    SeverityStructural,
				Annotations: []string{a.ID, b.ID},
				TaskID:      t.ID,
				Explanation: "Potential for occlusion yet marked as 0%",
			})
		}
	}

	for i := range anns {
		for j := i + 1; j < len(anns); j++ {
			flag(&anns[i], &anns[j])
			if c.DoubleCount {
				flag(&anns[j], &anns[i])
			}
		}
	}
	return issues, nil
}

// occlusionPercentage computes the averaged per-axis overlap fraction for
// two boxes, as a percentage. This is a cheap proxy for IoU, not a true
// intersection-over-union: each axis contributes
// intersection-length / combined-span, and the two fractions are averaged.
// Coordinates are truncated to integer pixels; boxes occupy the inclusive
// pixel range [left, left+width-1].
//
// ok is false when either box has non-positive integer extent or the
// combined span on an axis is zero; the caller must skip such pairs.
func occlusionPercentage(a, b *task.Annotation) (pct float64, ok bool) {
	ax, axOK := axisOverlap(a.Left, a.Width, b.Left, b.Width)
	ay, ayOK := axisOverlap(a.Top, a.Height, b.Top, b.Height)
	if !axOK || !ayOK {
		return 0, false
	}
	if ax == 0 || ay == 0 {
		// Bounding spans may overlap while the boxes themselves do not;
		// only a real two-axis intersection counts as occlusion.
		return 0, true
	}
	return (ax + ay) / 2 * 100, true
}

// axisOverlap returns intersection-length / combined-span for one axis.
func axisOverlap(aPos, aLen, bPos, bLen float64) (frac float64, ok bool) {
	aLo := trunc(aPos)
	bLo := trunc(bPos)
	aHi := aLo + trunc(aLen) - 1
	bHi := bLo + trunc(bLen) - 1
	if aHi < aLo || bHi < bLo {
		return 0, false
	}

	span := max(aHi, bHi) - min(aLo, bLo)
	if span == 0 {
		return 0, false
	}

	lo := max(aLo, bLo)
	hi := min(aHi, bHi)
	if hi < lo {
		return 0, true
	}
	return float64(hi-lo+1) / float64(span), true
}

func trunc(f float64) int { return int(math.Trunc(f)) }
