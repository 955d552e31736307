package sqlite

import (
	"context"
	"database/sql"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
	"github.com/ajmorgan/taskgraph/internal/storage/executor"
	"github.com/ajmorgan/taskgraph/internal/types"
)

// AddDependency records "taskID is blocked by blocksOnID": self-edge
// rejection, endpoint resolution, a cycle pre-check, and the insert all run
// inside one transaction so the graph cannot change between check and
// write (spec §5).
func (s *Store) AddDependency(ctx context.Context, taskID, blocksOnID int64) error {
	const op = "add dependency"
	if taskID == blocksOnID {
		return engineerr.New(engineerr.InvalidInput, op)
	}

	return s.ex.WithTx(ctx, func(tx *executorTx) error {
		for _, id := range []int64{taskID, blocksOnID} {
			var exists int
			if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ?`, id).Scan(&exists); err != nil {
				return engineerr.Wrap(engineerr.StepFailed, op, err)
			}
			if exists == 0 {
				return engineerr.New(engineerr.InvalidData, op)
			}
		}

		cycle, err := detectCycle(ctx, tx, taskID, blocksOnID)
		if err != nil {
			return err
		}
		if cycle {
			return engineerr.New(engineerr.CycleDetected, op)
		}

		now := s.now()
		if _, err := executor.Exec(ctx, tx, op, `
			INSERT INTO dependencies (task_id, blocks_on_id, created_at) VALUES (?, ?, ?)
		`, taskID, blocksOnID, now); err != nil {
			return err
		}
		return s.rebuildBlockedCache(ctx, tx)
	})
}

// detectCycle reports whether adding the edge (proposedTask, proposedBlocker)
// would close a cycle: equivalently, whether proposedTask is already
// reachable from proposedBlocker over existing edges. The traversal walks
// from the proposed blocker toward the proposed blocked task — the inverse
// direction is a known defect class (spec §9) and must not be used here.
func detectCycle(ctx context.Context, tx *executorTx, proposedTask, proposedBlocker int64) (bool, error) {
	const op = "detect cycle"
	var reachable int
	err := tx.QueryRowContext(ctx, `
		WITH RECURSIVE reachable(node) AS (
			SELECT ?
			UNION
			SELECT d.blocks_on_id
			FROM dependencies d
			JOIN reachable r ON d.task_id = r.node
		)
		SELECT COUNT(*) FROM reachable WHERE node = ?
	`, proposedBlocker, proposedTask).Scan(&reachable)
	if err != nil {
		return false, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	return reachable > 0, nil
}

// RemoveDependency deletes the exact edge, failing InvalidData if it does
// not exist.
func (s *Store) RemoveDependency(ctx context.Context, taskID, blocksOnID int64) error {
	const op = "remove dependency"
	return s.ex.WithTx(ctx, func(tx *executorTx) error {
		n, err := executor.Exec(ctx, tx, op, `DELETE FROM dependencies WHERE task_id = ? AND blocks_on_id = ?`, taskID, blocksOnID)
		if err != nil {
			return err
		}
		if n == 0 {
			return engineerr.New(engineerr.InvalidData, op)
		}
		return s.rebuildBlockedCache(ctx, tx)
	})
}

// GetBlockers returns every task that transitively blocks taskID, each with
// its shortest-path depth (≥1), ordered by depth ascending then task id
// ascending. Traversal follows "blocked-by" edges starting at taskID: a
// direct blocker is the blocks_on_id of an edge whose task_id is taskID;
// each further hop walks the same edge direction from the previous node.
func (s *Store) GetBlockers(ctx context.Context, taskID int64) ([]types.BlockerEntry, error) {
	return s.walkDependencyGraph(ctx, "get blockers", taskID, "task_id", "blocks_on_id")
}

// GetDependents returns every task that transitively depends on taskID (the
// inverse traversal direction), with the same depth and ordering rules.
func (s *Store) GetDependents(ctx context.Context, taskID int64) ([]types.BlockerEntry, error) {
	return s.walkDependencyGraph(ctx, "get dependents", taskID, "blocks_on_id", "task_id")
}

// walkDependencyGraph runs a shortest-path BFS over the dependencies edge
// table starting at taskID. anchorCol names the column matched against
// taskID for the base case ("task_id" for blockers, "blocks_on_id" for
// dependents); stepCol names the column selected as the next node ("the
// other end of the edge").
func (s *Store) walkDependencyGraph(ctx context.Context, op string, taskID int64, anchorCol, stepCol string) ([]types.BlockerEntry, error) {
	query := `
		WITH RECURSIVE walk(node, depth) AS (
			SELECT ` + stepCol + `, 1
			FROM dependencies
			WHERE ` + anchorCol + ` = ?
			UNION
			SELECT d.` + stepCol + `, w.depth + 1
			FROM walk w
			JOIN dependencies d ON d.` + anchorCol + ` = w.node
		),
		shortest AS (
			SELECT node, MIN(depth) AS depth FROM walk GROUP BY node
		)
		SELECT ` + taskColumns + `, shortest.depth
		FROM shortest
		JOIN tasks ON tasks.id = shortest.node
		JOIN plans ON plans.id = tasks.plan_id
		ORDER BY shortest.depth ASC, tasks.id ASC
	`
	return executor.QueryAll(ctx, s.db, op, query, func(rows *sql.Rows) (types.BlockerEntry, error) {
		var e types.BlockerEntry
		t, err := scanTaskWithDepth(rows, &e.Depth)
		e.Task = t
		return e, err
	}, taskID)
}

func scanTaskWithDepth(rows *sql.Rows, depth *int) (types.Task, error) {
	var t types.Task
	var status string
	err := rows.Scan(&t.ID, &t.PlanID, &t.PlanSlug, &t.PlanTaskNumber, &t.Title, &t.Description,
		&status, &t.CreatedAt, &t.UpdatedAt, &t.StartedAt, &t.CompletedAt, depth)
	t.Status = types.Status(status)
	return t, err
}
