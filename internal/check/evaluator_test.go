package check

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"annolint/internal/imagery"
	"annolint/internal/task"
)

func sampleBatch() []task.Task {
	return []task.Task{
		{
			ID:       "task-1",
			ImageURL: "http://img.example/1.png",
			Annotations: []task.Annotation{
				box("a", 0, 0, 10, 10, task.OcclusionZero),
				box("b", 2, 2, 10, 10, task.OcclusionZero),
			},
		},
		{
			ID:       "task-2",
			ImageURL: "http://img.example/2.png",
			Annotations: []task.Annotation{
				box("c", 0, 0, 3, 3, task.OcclusionZero),
			},
		},
	}
}

func TestEvaluator_ReportInvariants(t *testing.T) {
	src := &imagery.StubSource{Img: solidImage(20, 20, color.RGBA{R: 255, A: 255})}
	ev := NewDefaultEvaluator(src)

	report, err := ev.Evaluate(context.Background(), sampleBatch())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if report.Count != len(report.Flagged) {
		t.Errorf("count %d != len(flagged) %d", report.Count, len(report.Flagged))
	}
	wantTypes := []Type{TypeOcclusion, TypeStrayClick, TypeColor}
	if diff := cmp.Diff(wantTypes, report.Types); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
}

func TestEvaluator_TypesFixedWhenNothingFlagged(t *testing.T) {
	src := &imagery.StubSource{Img: solidImage(20, 20, color.RGBA{R: 255, A: 255})}
	ev := NewDefaultEvaluator(src)

	clean := []task.Task{{
		ID:       "task-1",
		ImageURL: "http://img.example/1.png",
		Annotations: []task.Annotation{
			box("a", 0, 0, 10, 10, task.OcclusionZero),
		},
	}}

	report, err := ev.Evaluate(context.Background(), clean)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if report.Count != 0 {
		t.Errorf("count: got %d want 0", report.Count)
	}
	if diff := cmp.Diff(AllTypes(), report.Types); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
}

func TestEvaluator_Idempotent(t *testing.T) {
	src := &imagery.StubSource{Img: solidImage(20, 20, color.RGBA{R: 255, A: 255})}
	ev := NewDefaultEvaluator(src)
	batch := sampleBatch()

	first, err := ev.Evaluate(context.Background(), batch)
	if err != nil {
		t.Fatalf("first Evaluate: %v", err)
	}
	second, err := ev.Evaluate(context.Background(), batch)
	if err != nil {
		t.Fatalf("second Evaluate: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reports differ between runs (-first +second):\n%s", diff)
	}
}

func TestEvaluator_IssueOrderFollowsTaskThenCheck(t *testing.T) {
	src := &imagery.StubSource{Img: solidImage(20, 20, color.RGBA{R: 255, A: 255})}
	ev := NewDefaultEvaluator(src)

	report, err := ev.Evaluate(context.Background(), sampleBatch())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	// task-1 yields an occlusion issue; task-2 yields a stray click.
	if len(report.Flagged) < 2 {
		t.Fatalf("flagged: got %d want >= 2", len(report.Flagged))
	}
	if report.Flagged[0].TaskID != "task-1" || report.Flagged[0].Type != TypeOcclusion {
		t.Errorf("first issue: got %+v", report.Flagged[0])
	}
	last := report.Flagged[len(report.Flagged)-1]
	if last.TaskID != "task-2" || last.Type != TypeStrayClick {
		t.Errorf("last issue: got %+v", last)
	}
}

func TestEvaluator_CollaboratorFailureAbortsRun(t *testing.T) {
	src := &imagery.StubSource{Err: errors.New("image host down")}
	ev := NewDefaultEvaluator(src)

	batch := []task.Task{{
		ID:       "task-1",
		ImageURL: "http://img.example/1.png",
		Annotations: []task.Annotation{
			colorAnn("a", "car", "red", 0, 0, 10, 10),
		},
	}}

	report, err := ev.Evaluate(context.Background(), batch)
	if err == nil {
		t.Fatal("expected error from failed image fetch")
	}
	if report != nil {
		t.Errorf("expected no partial report, got %+v", report)
	}
}

func TestEvaluator_EmptyBatch(t *testing.T) {
	ev := NewDefaultEvaluator(&imagery.StubSource{})
	report, err := ev.Evaluate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if report.Count != 0 || len(report.Flagged) != 0 {
		t.Errorf("empty batch report: %+v", report)
	}
	if diff := cmp.Diff(AllTypes(), report.Types); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
}
