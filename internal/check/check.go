// Package check implements the quality checks run against annotation tasks:
// occlusion consistency, stray-click detection, and color consistency.
//
// Checks report anomalies as Issues, never as errors. An error returned by
// a check means a collaborator failed (e.g. the task image could not be
// fetched) and aborts the whole batch evaluation.
package check

import (
	"context"

	"annolint/internal/task"
)

// Type identifies which check produced an issue.
type Type string

const (
	TypeOcclusion  Type = "occlusion"
	TypeStrayClick Type = "stray_click"
	TypeColor      Type = "color"
)

// AllTypes is the fixed set of check types exercised by an evaluation,
// reported regardless of whether any issues were found.
func AllTypes() []Type {
	return []Type{TypeOcclusion, TypeStrayClick, TypeColor}
}

// Issue severities. Structural rule violations are high confidence;
// pixel-sampling mismatches are advisory.
const (
	SeverityStructural = 10
	SeverityAdvisory   = 5
)

// Issue is one flagged quality defect. Issues are pure value records:
// created by checks, never mutated.
type Issue struct {
	Type        Type     `json:"type"`
	Severity    int      `json:"severity"`
	Annotations []string `json:"annotations"`
	TaskID      string   `json:"task"`
	Explanation string   `json:"explanation"`
}

// Report is the result of one batch evaluation.
// Invariant: Count == len(Flagged).
type Report struct {
	Count   int     `json:"count"`
	Types   []Type  `json:"types"`
	Flagged []Issue `json:"flagged"`
}

// Check is one quality check evaluated per task.
type Check interface {
	// Name returns the check's type name for logging and reports.
	Name() Type
	// Evaluate inspects one task and returns the issues found. A returned
	// error means a collaborator failure, not a failed check.
	Evaluate(ctx context.Context, t *task.Task) ([]Issue, error)
}
