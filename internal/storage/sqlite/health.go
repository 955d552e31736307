package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
	"github.com/ajmorgan/taskgraph/internal/types"
)

// HealthCheck returns the two ordered sequences of spec §4.7: errors are
// integrity violations that should be impossible if the engine is correct,
// warnings are benign anomalies. Shape follows the teacher's doctorCheck
// convention — a named check, a message, and an optional detail.
func (s *Store) HealthCheck(ctx context.Context) (*types.HealthReport, error) {
	const op = "health check"
	report := &types.HealthReport{}

	orphans, err := s.countOrphanEdges(ctx)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	if orphans > 0 {
		report.Errors = append(report.Errors, types.HealthEntry{
			Check:   "orphan-edges",
			Message: "dependency edges reference a missing task",
			Detail:  fmt.Sprintf("%d orphan edge(s) found", orphans),
		})
	}

	cyclic, err := s.hasCycle(ctx)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	if cyclic {
		report.Errors = append(report.Errors, types.HealthEntry{
			Check:   "dependency-cycle",
			Message: "the dependency graph contains a cycle",
		})
	}

	badCompleted, err := s.countTasksWithBadTimestamps(ctx)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	if badCompleted > 0 {
		report.Errors = append(report.Errors, types.HealthEntry{
			Check:   "status-timestamp-mismatch",
			Message: "tasks have a status/timestamp combination that violates the lifecycle invariant",
			Detail:  fmt.Sprintf("%d task(s) affected", badCompleted),
		})
	}

	emptyPlans, err := s.countEmptyPlans(ctx)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	if emptyPlans > 0 {
		report.Warnings = append(report.Warnings, types.HealthEntry{
			Check:   "empty-plans",
			Message: "plans with zero tasks",
			Detail:  fmt.Sprintf("%d plan(s)", emptyPlans),
		})
	}

	emptyDescriptions, err := s.countEmptyDescriptions(ctx)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	if emptyDescriptions > 0 {
		report.Warnings = append(report.Warnings, types.HealthEntry{
			Check:   "empty-descriptions",
			Message: "tasks with an empty description",
			Detail:  fmt.Sprintf("%d task(s)", emptyDescriptions),
		})
	}

	return report, nil
}

func (s *Store) countOrphanEdges(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dependencies d
		WHERE NOT EXISTS (SELECT 1 FROM tasks WHERE id = d.task_id)
		   OR NOT EXISTS (SELECT 1 FROM tasks WHERE id = d.blocks_on_id)
	`).Scan(&n)
	return n, scanErr(err)
}

// hasCycle runs an independent DFS/CTE check across the whole graph,
// distinct from detectCycle's single-edge pre-check, so a doctor pass can
// catch a cycle introduced by any means (e.g. direct SQL tampering).
func (s *Store) hasCycle(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		WITH RECURSIVE walk(start, node, depth) AS (
			SELECT task_id, blocks_on_id, 1 FROM dependencies
			UNION ALL
			SELECT w.start, d.blocks_on_id, w.depth + 1
			FROM walk w
			JOIN dependencies d ON d.task_id = w.node
			WHERE w.depth < (SELECT COUNT(*) FROM tasks)
		)
		SELECT COUNT(*) FROM walk WHERE node = start
	`).Scan(&n)
	return n > 0, scanErr(err)
}

func (s *Store) countTasksWithBadTimestamps(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tasks WHERE
			(status = 'completed' AND completed_at IS NULL) OR
			(status = 'in_progress' AND (started_at IS NULL OR completed_at IS NOT NULL)) OR
			(status = 'open' AND completed_at IS NOT NULL)
	`).Scan(&n)
	return n, scanErr(err)
}

func (s *Store) countEmptyPlans(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM plans p
		WHERE NOT EXISTS (SELECT 1 FROM tasks WHERE plan_id = p.id)
	`).Scan(&n)
	return n, scanErr(err)
}

func (s *Store) countEmptyDescriptions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE description = ''`).Scan(&n)
	return n, scanErr(err)
}

func scanErr(err error) error {
	if err == sql.ErrNoRows {
		return nil
	}
	return err
}
