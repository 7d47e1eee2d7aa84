package store

import (
	"sort"
	"sync"
	"time"

	"annolint/internal/task"
)

// MemStore is an in-memory Store for tests. Implements Store.
type MemStore struct {
	mu      sync.Mutex
	batches map[string]memBatch
}

type memBatch struct {
	tasks     []task.Task
	fetchedAt time.Time
}

// NewMemStore returns a new in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{batches: make(map[string]memBatch)}
}

// SaveBatch implements Store.
func (s *MemStore) SaveBatch(project string, tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]task.Task, len(tasks))
	copy(cp, tasks)
	s.batches[project] = memBatch{tasks: cp, fetchedAt: time.Now().UTC()}
	return nil
}

// GetBatch implements Store.
func (s *MemStore) GetBatch(project string) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.batches[project]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]task.Task, len(b.tasks))
	copy(cp, b.tasks)
	return cp, nil
}

// ListBatches implements Store.
func (s *MemStore) ListBatches() ([]BatchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]BatchInfo, 0, len(s.batches))
	for project, b := range s.batches {
		infos = append(infos, BatchInfo{
			Project:   project,
			Tasks:     len(b.tasks),
			FetchedAt: b.fetchedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Project < infos[j].Project })
	return infos, nil
}

// Close implements Store.
func (s *MemStore) Close() error { return nil }
