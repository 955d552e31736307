package sqlite

import (
	"context"
	"database/sql"

	"github.com/ajmorgan/taskgraph/internal/storage/executor"
	"github.com/ajmorgan/taskgraph/internal/types"
)

// GetBlockedTasks returns every open or in_progress task with ≥1
// non-completed direct blocker, paired with its direct-blocker count,
// ordered by that count descending then task id ascending ("most blocked
// first").
func (s *Store) GetBlockedTasks(ctx context.Context) ([]types.BlockedEntry, error) {
	const op = "get blocked tasks"
	query := `
		SELECT ` + taskColumns + `, blockers.n
		FROM tasks
		JOIN plans ON plans.id = tasks.plan_id
		JOIN (
			SELECT d.task_id AS task_id, COUNT(*) AS n
			FROM dependencies d
			JOIN tasks blocker ON blocker.id = d.blocks_on_id
			WHERE blocker.status != 'completed'
			GROUP BY d.task_id
		) blockers ON blockers.task_id = tasks.id
		WHERE tasks.status IN ('open', 'in_progress')
		ORDER BY blockers.n DESC, tasks.id ASC
	`
	return executor.QueryAll(ctx, s.db, op, query, func(rows *sql.Rows) (types.BlockedEntry, error) {
		var e types.BlockedEntry
		var status string
		err := rows.Scan(&e.Task.ID, &e.Task.PlanID, &e.Task.PlanSlug, &e.Task.PlanTaskNumber,
			&e.Task.Title, &e.Task.Description, &status, &e.Task.CreatedAt, &e.Task.UpdatedAt,
			&e.Task.StartedAt, &e.Task.CompletedAt, &e.DirectBlockers)
		e.Task.Status = types.Status(status)
		return e, err
	})
}
