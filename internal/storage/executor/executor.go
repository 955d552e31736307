// Package executor provides a typed façade over database/sql: exec,
// queryOne, and queryAll, plus transaction scoping. Storage components run
// most of their statements through these helpers so that failures are
// classified consistently (PrepareFailed for malformed SQL, StepFailed
// otherwise; BindFailed is not produced here). Some single-row reads and
// inserts in the sqlite package call database/sql directly and wrap their
// own errors.
package executor

import (
	"context"
	"database/sql"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, letting callers run the
// same statement inside or outside an explicit transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Executor wraps a *sql.DB with the exec/queryOne/queryAll façade.
type Executor struct {
	db *sql.DB
}

// New wraps an already-opened *sql.DB.
func New(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// DB returns the underlying connection pool, for callers that must manage
// their own transaction lifetime (BeginTx).
func (e *Executor) DB() *sql.DB {
	return e.db
}

// Exec runs a statement expected to produce no result rows, returning the
// number of affected rows. op names the caller operation for error context.
func Exec(ctx context.Context, q Querier, op, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	return n, nil
}

// QueryOne runs query and maps at most one row via scan into a T, returning
// (zero value, false, nil) if there were no rows.
func QueryOne[T any](ctx context.Context, q Querier, op, query string, scan func(*sql.Row) (T, error), args ...any) (T, bool, error) {
	var zero T
	row := q.QueryRowContext(ctx, query, args...)
	v, err := scan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return zero, false, nil
		}
		return zero, false, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	return v, true, nil
}

// QueryAll runs query and maps every row via scan into a []T, in result
// order.
func QueryAll[T any](ctx context.Context, q Querier, op, query string, scan func(*sql.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, op, err)
	}
	return out, nil
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on any error or panic. fn's error, if any, is returned unwrapped so
// callers can propagate a specific engineerr.Kind.
func (e *Executor) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return engineerr.Wrap(engineerr.StepFailed, "begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return engineerr.Wrap(engineerr.StepFailed, "commit transaction", err)
	}
	return nil
}

// classify distinguishes a malformed-statement failure from a runtime step
// failure using the error text sqlite returns for prepare-time problems.
// database/sql does not expose a distinct "prepare" error type when using
// QueryContext/ExecContext (it prepares and steps internally), so a SQL
// syntax error and a constraint violation both surface as one error; we
// classify by substring the way the teacher's wrapDBError does for
// sql.ErrNoRows.
func classify(op string, err error) *engineerr.Error {
	if err == nil {
		return nil
	}
	if isSyntaxError(err) {
		return engineerr.Wrap(engineerr.PrepareFailed, op, err)
	}
	return engineerr.Wrap(engineerr.StepFailed, op, err)
}

func isSyntaxError(err error) bool {
	msg := err.Error()
	return containsAny(msg, "syntax error", "no such table", "no such column")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if indexOf(s, sub) >= 0 {
			return true
		}
	}
	return false
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}
