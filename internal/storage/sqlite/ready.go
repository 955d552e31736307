package sqlite

import (
	"context"
	"database/sql"

	"github.com/ajmorgan/taskgraph/internal/storage/executor"
	"github.com/ajmorgan/taskgraph/internal/types"
)

// GetReadyTasks returns up to limit open tasks with no incomplete blocker,
// ordered by (plan_id, plan_task_number) ascending. limit = 0 means
// unbounded. Uses blocked_task_cache rather than a recursive CTE per call
// (spec's supplemented blocked-task-cache feature).
func (s *Store) GetReadyTasks(ctx context.Context, limit int) ([]types.Task, error) {
	const op = "get ready tasks"
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		JOIN plans ON plans.id = tasks.plan_id
		WHERE tasks.status = 'open'
		AND NOT EXISTS (SELECT 1 FROM blocked_task_cache WHERE task_id = tasks.id)
		ORDER BY tasks.plan_id ASC, tasks.plan_task_number ASC
	`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return executor.QueryAll(ctx, s.db, op, query, func(rows *sql.Rows) (types.Task, error) {
		return scanTask(rows)
	}, args...)
}
