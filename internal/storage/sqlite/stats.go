package sqlite

import (
	"context"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
	"github.com/ajmorgan/taskgraph/internal/types"
)

// GetSystemStats computes the aggregate record of spec §4.6 in a single
// batched query, avoiding N+1 round trips the way the teacher's batched
// dependency-count query does.
func (s *Store) GetSystemStats(ctx context.Context) (*types.SystemStats, error) {
	const op = "get system stats"
	var stats types.SystemStats

	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM plans),
			(SELECT COUNT(*) FROM plans p WHERE (SELECT COUNT(*) FROM tasks WHERE plan_id = p.id) > 0
				AND NOT EXISTS (SELECT 1 FROM tasks WHERE plan_id = p.id AND status != 'completed')),
			(SELECT COUNT(*) FROM tasks),
			(SELECT COUNT(*) FROM tasks WHERE status = 'open'),
			(SELECT COUNT(*) FROM tasks WHERE status = 'in_progress'),
			(SELECT COUNT(*) FROM tasks WHERE status = 'completed'),
			(SELECT COUNT(*) FROM tasks WHERE status = 'open'
				AND NOT EXISTS (SELECT 1 FROM blocked_task_cache WHERE task_id = tasks.id)),
			(SELECT COUNT(*) FROM tasks WHERE status IN ('open', 'in_progress')
				AND EXISTS (SELECT 1 FROM blocked_task_cache WHERE task_id = tasks.id))
	`)
	err := row.Scan(&stats.TotalPlans, &stats.CompletedPlans, &stats.TotalTasks,
		&stats.OpenTasks, &stats.InProgressTasks, &stats.CompletedTasks,
		&stats.ReadyTasks, &stats.BlockedTasks)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	return &stats, nil
}
