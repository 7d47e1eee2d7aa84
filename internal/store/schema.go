package store

// schema is applied on every open; idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS task_batches (
	project    TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	task_id    TEXT NOT NULL,
	payload    TEXT NOT NULL,
	fetched_at TEXT NOT NULL,
	PRIMARY KEY (project, task_id)
);

CREATE INDEX IF NOT EXISTS idx_task_batches_project_seq
	ON task_batches (project, seq);
`
