package sqlite

import (
	"context"
	"database/sql"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
	"github.com/ajmorgan/taskgraph/internal/storage/executor"
	"github.com/ajmorgan/taskgraph/internal/types"
	"github.com/ajmorgan/taskgraph/internal/validation"
)

// executorTx is a type alias so storage files can name the transaction
// handle passed into Executor.WithTx without importing database/sql just
// for the type name.
type executorTx = sql.Tx

// CreatePlan validates the slug and field lengths, then inserts a new plan
// with task_counter = 0.
func (s *Store) CreatePlan(ctx context.Context, slug, title, description string, executionStartedAt *int64) (*types.Plan, error) {
	const op = "create plan"
	if err := validation.ValidateSlug(slug); err != nil {
		return nil, engineerr.Wrap(engineerr.InvalidKebabCase, op, err)
	}
	if err := validation.ValidateTitle(title); err != nil {
		return nil, engineerr.Wrap(engineerr.InvalidInput, op, err)
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, engineerr.Wrap(engineerr.InvalidInput, op, err)
	}

	now := s.now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO plans (slug, title, description, task_counter, created_at, updated_at, execution_started_at)
		VALUES (?, ?, ?, 0, ?, ?, ?)
	`, slug, title, description, now, now, executionStartedAt)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}

	return &types.Plan{
		ID:                 id,
		Slug:               slug,
		Title:              title,
		Description:        description,
		TaskCounter:        0,
		CreatedAt:          now,
		UpdatedAt:          now,
		ExecutionStartedAt: executionStartedAt,
	}, nil
}

const planColumns = `id, slug, title, description, task_counter, created_at, updated_at, execution_started_at, completed_at`

// GetPlanIdFromSlug resolves a plan's surrogate id, failing InvalidData if
// the slug is unknown.
func (s *Store) GetPlanIdFromSlug(ctx context.Context, slug string) (int64, error) {
	const op = "get plan id from slug"
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM plans WHERE slug = ?`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, engineerr.New(engineerr.InvalidData, op)
	}
	if err != nil {
		return 0, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	return id, nil
}

// GetPlanSummary returns the plan and its aggregated task counts, or nil if
// the slug is unknown.
func (s *Store) GetPlanSummary(ctx context.Context, slug string) (*types.PlanSummary, error) {
	const op = "get plan summary"
	row := s.db.QueryRowContext(ctx, `
		SELECT `+planColumns+`,
			(SELECT COUNT(*) FROM tasks WHERE plan_id = plans.id),
			(SELECT COUNT(*) FROM tasks WHERE plan_id = plans.id AND status = 'open'),
			(SELECT COUNT(*) FROM tasks WHERE plan_id = plans.id AND status = 'in_progress'),
			(SELECT COUNT(*) FROM tasks WHERE plan_id = plans.id AND status = 'completed')
		FROM plans WHERE slug = ?
	`, slug)

	var ps types.PlanSummary
	err := row.Scan(&ps.ID, &ps.Slug, &ps.Title, &ps.Description, &ps.TaskCounter,
		&ps.CreatedAt, &ps.UpdatedAt, &ps.ExecutionStartedAt, &ps.CompletedAt,
		&ps.TotalTasks, &ps.OpenTasks, &ps.InProgressTasks, &ps.CompletedTasks)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	return &ps, nil
}

// ListPlans returns every plan with its aggregates, ordered by id ascending.
func (s *Store) ListPlans(ctx context.Context) ([]types.PlanSummary, error) {
	const op = "list plans"
	return executor.QueryAll(ctx, s.db, op, `
		SELECT `+planColumns+`,
			(SELECT COUNT(*) FROM tasks WHERE plan_id = plans.id),
			(SELECT COUNT(*) FROM tasks WHERE plan_id = plans.id AND status = 'open'),
			(SELECT COUNT(*) FROM tasks WHERE plan_id = plans.id AND status = 'in_progress'),
			(SELECT COUNT(*) FROM tasks WHERE plan_id = plans.id AND status = 'completed')
		FROM plans ORDER BY id ASC
	`, func(rows *sql.Rows) (types.PlanSummary, error) {
		var ps types.PlanSummary
		err := rows.Scan(&ps.ID, &ps.Slug, &ps.Title, &ps.Description, &ps.TaskCounter,
			&ps.CreatedAt, &ps.UpdatedAt, &ps.ExecutionStartedAt, &ps.CompletedAt,
			&ps.TotalTasks, &ps.OpenTasks, &ps.InProgressTasks, &ps.CompletedTasks)
		return ps, err
	})
}

// UpdatePlan partially updates title and/or description.
func (s *Store) UpdatePlan(ctx context.Context, slug string, title, description *string) error {
	const op = "update plan"
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

	n, err := executor.Exec(ctx, s.db, op, `
		UPDATE plans SET
			title = COALESCE(?, title),
			description = COALESCE(?, description),
			updated_at = ?
		WHERE slug = ?
	`, title, description, s.now(), slug)
	if err != nil {
		return err
	}
	if n == 0 {
		return engineerr.New(engineerr.InvalidData, op)
	}
	return nil
}

// DeletePlan removes the plan; cascading foreign keys remove its tasks and
// any dependency edges incident to them (I2). Returns the number of tasks
// removed.
func (s *Store) DeletePlan(ctx context.Context, slug string) (int, error) {
	const op = "delete plan"

	var taskCount int
	var deleted int64
	err := s.ex.WithTx(ctx, func(tx *executorTx) error {
		var planID int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM plans WHERE slug = ?`, slug).Scan(&planID)
		if err == sql.ErrNoRows {
			return engineerr.New(engineerr.InvalidData, op)
		}
		if err != nil {
			return engineerr.Wrap(engineerr.StepFailed, op, err)
		}

		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE plan_id = ?`, planID).Scan(&taskCount); err != nil {
			return engineerr.Wrap(engineerr.StepFailed, op, err)
		}

		n, err := executor.Exec(ctx, tx, op, `DELETE FROM plans WHERE id = ?`, planID)
		if err != nil {
			return err
		}
		deleted = n
		return s.rebuildBlockedCache(ctx, tx)
	})
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, engineerr.New(engineerr.InvalidData, op)
	}
	return taskCount, nil
}
