// Package sqlite implements the dependency engine's storage components
// (plan store, task store, dependency engine, identifier resolution,
// aggregates, health check) on top of modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
	"github.com/ajmorgan/taskgraph/internal/storage/executor"
)

// Store is the engine's single storage component: one database connection
// plus the typed executor façade used by every operation below it.
type Store struct {
	db  *sql.DB
	ex  *executor.Executor
	now func() int64
}

// Open opens (creating if absent) the database file at path, applies the
// idempotent schema, and verifies the foreign-key pragma took effect.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", connString(path))
	if err != nil {
		return nil, engineerr.Wrap(engineerr.StepFailed, "open database", err)
	}
	db.SetMaxOpenConns(1) // single-process, single-writer use per spec §5

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := applySchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, ex: executor.New(db), now: unixNow}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func unixNow() int64 {
	return time.Now().Unix()
}

// connString builds the modernc.org/sqlite DSN, enabling foreign keys and a
// generous busy timeout so a second invocation waiting on a lock fails
// loudly rather than hanging forever.
func connString(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return fmt.Sprintf("%s%s_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path, sep)
	}
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)
}
