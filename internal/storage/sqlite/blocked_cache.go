package sqlite

import (
	"context"

	"github.com/ajmorgan/taskgraph/internal/storage/executor"
)

// rebuildBlockedCache fully recomputes blocked_task_cache: a task is
// blocked if it has a direct blocks_on edge to a task that is not yet
// completed. Called within the same transaction as any dependency or
// status change so getReadyTasks never observes a stale cache (spec's
// supplemented blocked-task cache feature, grounded on the teacher's
// blocked_issues_cache rebuild-on-write design).
func (s *Store) rebuildBlockedCache(ctx context.Context, tx *executorTx) error {
	const op = "rebuild blocked task cache"
	if _, err := executor.Exec(ctx, tx, op, `DELETE FROM blocked_task_cache`); err != nil {
		return err
	}
	_, err := executor.Exec(ctx, tx, op, `
		INSERT INTO blocked_task_cache (task_id)
		SELECT DISTINCT d.task_id
		FROM dependencies d
		JOIN tasks blocker ON blocker.id = d.blocks_on_id
		WHERE blocker.status != 'completed'
	`)
	return err
}
