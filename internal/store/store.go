// Package store caches fetched task batches locally so an audit can be
// re-run without hitting the annotation platform. Check results are never
// persisted; only the fetched inputs are.
package store

import (
	"errors"
	"time"

	"annolint/internal/task"
)

// ErrNotFound is returned when no batch is cached for a project.
var ErrNotFound = errors.New("store: batch not found")

// BatchInfo summarizes one cached batch.
type BatchInfo struct {
	Project   string
	Tasks     int
	FetchedAt time.Time
}

// Store persists fetched task batches keyed by project.
type Store interface {
	// SaveBatch replaces the cached batch for a project.
	SaveBatch(project string, tasks []task.Task) error
	// GetBatch returns the cached batch for a project in fetch order.
	// Returns ErrNotFound when nothing is cached.
	GetBatch(project string) ([]task.Task, error)
	// ListBatches returns a summary of every cached batch, sorted by project.
	ListBatches() ([]BatchInfo, error)
	Close() error
}
