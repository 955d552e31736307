package sqlite

import (
	"context"
	"database/sql"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
)

// schema is applied once on open. All statements are idempotent so that
// opening an existing database is a no-op; there are no migrations
// in-scope (spec §2.2).
const schema = `
CREATE TABLE IF NOT EXISTS plans (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	slug                  TEXT NOT NULL UNIQUE,
	title                 TEXT NOT NULL,
	description           TEXT NOT NULL DEFAULT '',
	task_counter          INTEGER NOT NULL DEFAULT 0 CHECK (task_counter >= 0),
	created_at            INTEGER NOT NULL,
	updated_at            INTEGER NOT NULL,
	execution_started_at  INTEGER,
	completed_at          INTEGER
);

CREATE TABLE IF NOT EXISTS tasks (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	plan_id           INTEGER NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
	plan_task_number  INTEGER NOT NULL,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL CHECK (status IN ('open', 'in_progress', 'completed')),
	created_at        INTEGER NOT NULL,
	updated_at        INTEGER NOT NULL,
	started_at        INTEGER,
	completed_at      INTEGER,
	UNIQUE (plan_id, plan_task_number)
);

CREATE INDEX IF NOT EXISTS idx_tasks_plan_id ON tasks(plan_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);

CREATE TABLE IF NOT EXISTS dependencies (
	task_id        INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	blocks_on_id   INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	created_at     INTEGER NOT NULL,
	PRIMARY KEY (task_id, blocks_on_id),
	CHECK (task_id != blocks_on_id)
);

CREATE INDEX IF NOT EXISTS idx_dependencies_blocks_on_id ON dependencies(blocks_on_id);

-- blocked_task_cache materializes "this task currently has an incomplete
-- blocker", rebuilt in the same transaction as any edge or status change so
-- getReadyTasks is a NOT EXISTS lookup instead of a recursive CTE per read.
CREATE TABLE IF NOT EXISTS blocked_task_cache (
	task_id  INTEGER PRIMARY KEY REFERENCES tasks(id) ON DELETE CASCADE
);
`

// applySchema creates the schema and turns on the pragmas the engine
// requires (foreign key enforcement is mandatory per spec §5).
func applySchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return engineerr.Wrap(engineerr.StepFailed, "enable foreign keys", err)
	}
	var fkOn int
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fkOn); err != nil {
		return engineerr.Wrap(engineerr.StepFailed, "verify foreign keys pragma", err)
	}
	if fkOn != 1 {
		return engineerr.New(engineerr.StepFailed, "foreign key enforcement did not take effect")
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return engineerr.Wrap(engineerr.StepFailed, "apply schema", err)
	}
	return nil
}
