package sqlite

import (
	"context"
	"database/sql"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
	"github.com/ajmorgan/taskgraph/internal/storage/executor"
	"github.com/ajmorgan/taskgraph/internal/types"
	"github.com/ajmorgan/taskgraph/internal/validation"
)

const taskColumns = `tasks.id, tasks.plan_id, plans.slug, tasks.plan_task_number, tasks.title, tasks.description, tasks.status, tasks.created_at, tasks.updated_at, tasks.started_at, tasks.completed_at`

func scanTask(row interface{ Scan(dest ...any) error }) (types.Task, error) {
	var t types.Task
	var status string
	err := row.Scan(&t.ID, &t.PlanID, &t.PlanSlug, &t.PlanTaskNumber, &t.Title, &t.Description,
		&status, &t.CreatedAt, &t.UpdatedAt, &t.StartedAt, &t.CompletedAt)
	t.Status = types.Status(status)
	return t, err
}

// CreateTask resolves slug to plan_id, allocates plan_task_number =
// task_counter + 1, inserts the task, and bumps the counter, all inside one
// transaction.
func (s *Store) CreateTask(ctx context.Context, planSlug, title, description string) (*types.Task, error) {
	const op = "create task"
	if err := validation.ValidateTitle(title); err != nil {
		return nil, engineerr.Wrap(engineerr.InvalidInput, op, err)
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, engineerr.Wrap(engineerr.InvalidInput, op, err)
	}

	now := s.now()
	var task types.Task

	err := s.ex.WithTx(ctx, func(tx *executorTx) error {
		var planID, counter int64
		err := tx.QueryRowContext(ctx, `SELECT id, task_counter FROM plans WHERE slug = ?`, planSlug).Scan(&planID, &counter)
		if err == sql.ErrNoRows {
			return engineerr.New(engineerr.InvalidData, op)
		}
		if err != nil {
			return engineerr.Wrap(engineerr.StepFailed, op, err)
		}

		number := counter + 1
		res, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (plan_id, plan_task_number, title, description, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, 'open', ?, ?)
		`, planID, number, title, description, now, now)
		if err != nil {
			return engineerr.Wrap(engineerr.StepFailed, op, err)
		}
		taskID, err := res.LastInsertId()
		if err != nil {
			return engineerr.Wrap(engineerr.StepFailed, op, err)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE plans SET task_counter = ?, updated_at = ? WHERE id = ?`, number, now, planID); err != nil {
			return engineerr.Wrap(engineerr.StepFailed, op, err)
		}

		task = types.Task{
			ID:             taskID,
			PlanID:         planID,
			PlanSlug:       planSlug,
			PlanTaskNumber: number,
			Title:          title,
			Description:    description,
			Status:         types.StatusOpen,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask returns the task joined with its owning plan's slug, or nil if
// unknown.
func (s *Store) GetTask(ctx context.Context, taskID int64) (*types.Task, error) {
	const op = "get task"
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+` FROM tasks JOIN plans ON plans.id = tasks.plan_id WHERE tasks.id = ?
	`, taskID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	return &t, nil
}

// GetTaskByPlanAndNumber resolves (slug, plan_task_number) to a surrogate
// task id, or (0, false) if unknown.
func (s *Store) GetTaskByPlanAndNumber(ctx context.Context, slug string, number int64) (int64, bool, error) {
	const op = "get task by plan and number"
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT tasks.id FROM tasks JOIN plans ON plans.id = tasks.plan_id
		WHERE plans.slug = ? AND tasks.plan_task_number = ?
	`, slug, number).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	return id, true, nil
}

// ListTasks returns tasks ordered by (plan_id, plan_task_number) ascending,
// honouring both filters independently when set.
func (s *Store) ListTasks(ctx context.Context, status *types.Status, planSlug *string) ([]types.Task, error) {
	const op = "list tasks"
	where := []string{"1 = 1"}
	var args []any
	if status != nil {
		where = append(where, "tasks.status = ?")
		args = append(args, string(*status))
	}
	if planSlug != nil {
		where = append(where, "plans.slug = ?")
		args = append(args, *planSlug)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks JOIN plans ON plans.id = tasks.plan_id WHERE ` +
		joinAnd(where) + ` ORDER BY tasks.plan_id ASC, tasks.plan_task_number ASC`

	return executor.QueryAll(ctx, s.db, op, query, func(rows *sql.Rows) (types.Task, error) {
		return scanTask(rows)
	}, args...)
}

func joinAnd(clauses []string) string {
	out := clauses[0]
	for _, c := range clauses[1:] {
		out += " AND " + c
	}
	return out
}

// UpdateTask applies a partial update plus the state-machine timestamp
// rules of spec §4.3.
func (s *Store) UpdateTask(ctx context.Context, taskID int64, title, description *string, status *types.Status) error {
	const op = "update task"
	if title != nil {
		if err := validation.ValidateTitle(*title); err != nil {
			return engineerr.Wrap(engineerr.InvalidInput, op, err)
		}
	}
	if description != nil {
		if err := validation.ValidateDescription(*description); err != nil {
			return engineerr.Wrap(engineerr.InvalidInput, op, err)
		}
	}

	return s.ex.WithTx(ctx, func(tx *executorTx) error {
		var current types.Status
		var s1 string
		if err := tx.QueryRowContext(ctx, `SELECT status FROM tasks WHERE id = ?`, taskID).Scan(&s1); err != nil {
			if err == sql.ErrNoRows {
				return engineerr.New(engineerr.InvalidData, op)
			}
			return engineerr.Wrap(engineerr.StepFailed, op, err)
		}
		current = types.Status(s1)

		now := s.now()
		newStatus := current
		if status != nil {
			newStatus = *status
		}

		var startedAt, completedAt any
		switch {
		case newStatus == types.StatusInProgress:
			if current == types.StatusOpen {
				startedAt = now
			}
			completedAt = nil
		case newStatus == types.StatusCompleted:
			if current == types.StatusOpen {
				startedAt = now
			}
			completedAt = now
		case newStatus == types.StatusOpen:
			completedAt = nil
		}

		setStarted := startedAt != nil
		setCompleted := status != nil && *status != current // only touch completed_at when status actually changes

		query := `UPDATE tasks SET title = COALESCE(?, title), description = COALESCE(?, description), status = ?, updated_at = ?`
		args := []any{title, description, string(newStatus), now}
		if setStarted {
			query += `, started_at = ?`
			args = append(args, startedAt)
		}
		if setCompleted {
			query += `, completed_at = ?`
			args = append(args, completedAt)
		}
		query += ` WHERE id = ?`
		args = append(args, taskID)

		n, err := executor.Exec(ctx, tx, op, query, args...)
		if err != nil {
			return err
		}
		if n == 0 {
			return engineerr.New(engineerr.InvalidData, op)
		}

		if status != nil && *status != current {
			if err := s.rebuildBlockedCache(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
}

// StartTask, CompleteTask, and ReopenTask are convenience wrappers over
// UpdateTask enforcing the same state machine.
func (s *Store) StartTask(ctx context.Context, taskID int64) error {
	st := types.StatusInProgress
	return s.UpdateTask(ctx, taskID, nil, nil, &st)
}

func (s *Store) CompleteTask(ctx context.Context, taskID int64) error {
	st := types.StatusCompleted
	return s.UpdateTask(ctx, taskID, nil, nil, &st)
}

func (s *Store) ReopenTask(ctx context.Context, taskID int64) error {
	st := types.StatusOpen
	return s.UpdateTask(ctx, taskID, nil, nil, &st)
}

// DeleteTask refuses if any other task depends on this one, otherwise
// removes it together with its own outgoing blocker edges (I3).
func (s *Store) DeleteTask(ctx context.Context, taskID int64) error {
	const op = "delete task"
	return s.ex.WithTx(ctx, func(tx *executorTx) error {
		var dependentCount int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM dependencies WHERE blocks_on_id = ?`, taskID).Scan(&dependentCount); err != nil {
			return engineerr.Wrap(engineerr.StepFailed, op, err)
		}
		if dependentCount > 0 {
			return engineerr.New(engineerr.InvalidData, op)
		}

		n, err := executor.Exec(ctx, tx, op, `DELETE FROM tasks WHERE id = ?`, taskID)
		if err != nil {
			return err
		}
		if n == 0 {
			return engineerr.New(engineerr.InvalidData, op)
		}
		return s.rebuildBlockedCache(ctx, tx)
	})
}
