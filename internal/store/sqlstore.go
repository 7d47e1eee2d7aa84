package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"annolint/internal/task"
)

// DefaultDBPath is where the CLI keeps its task cache.
const DefaultDBPath = ".annolint/tasks.db"

func nowUTC() string { return time.Now().UTC().Format(time.RFC3339) }

// SQLStore implements Store with SQLite.
type SQLStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and applies the schema.
func Open(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// OpenMemory opens an in-memory SQLite DB for testing.
func OpenMemory() (*SQLStore, error) {
	return Open(":memory:")
}

func (s *SQLStore) Close() error { return s.db.Close() }

// SaveBatch implements Store.
func (s *SQLStore) SaveBatch(project string, tasks []task.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM task_batches WHERE project = ?`, project); err != nil {
		return fmt.Errorf("clear batch: %w", err)
	}

	fetchedAt := nowUTC()
	for i := range tasks {
		payload, err := json.Marshal(&tasks[i])
		if err != nil {
			return fmt.Errorf("marshal task %s: %w", tasks[i].ID, err)
		}
		_, err = tx.Exec(
			`INSERT INTO task_batches (project, seq, task_id, payload, fetched_at) VALUES (?, ?, ?, ?, ?)`,
			project, i, tasks[i].ID, string(payload), fetchedAt,
		)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", tasks[i].ID, err)
		}
	}
	return tx.Commit()
}

// GetBatch implements Store.
func (s *SQLStore) GetBatch(project string) ([]task.Task, error) {
	rows, err := s.db.Query(
		`SELECT payload FROM task_batches WHERE project = ? ORDER BY seq`, project)
	if err != nil {
		return nil, fmt.Errorf("query batch: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		var t task.Task
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, fmt.Errorf("unmarshal task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch: %w", err)
	}
	if tasks == nil {
		return nil, ErrNotFound
	}
	return tasks, nil
}

// ListBatches implements Store.
func (s *SQLStore) ListBatches() ([]BatchInfo, error) {
	rows, err := s.db.Query(`
		SELECT project, COUNT(*), MAX(fetched_at)
		FROM task_batches GROUP BY project ORDER BY project`)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var infos []BatchInfo
	for rows.Next() {
		var info BatchInfo
		var fetchedAt string
		if err := rows.Scan(&info.Project, &info.Tasks, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scan batch info: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("parse fetched_at %q: %w", fetchedAt, err)
		}
		info.FetchedAt = ts
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return infos, nil
}
