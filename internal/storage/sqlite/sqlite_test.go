package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
	"github.com/ajmorgan/taskgraph/internal/storage/sqlite"
	"github.com/ajmorgan/taskgraph/internal/types"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.db")
	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustCreatePlan(t *testing.T, s *sqlite.Store, slug, title string) *types.Plan {
	t.Helper()
	p, err := s.CreatePlan(context.Background(), slug, title, "", nil)
	if err != nil {
		t.Fatalf("CreatePlan(%q) failed: %v", slug, err)
	}
	return p
}

func mustCreateTask(t *testing.T, s *sqlite.Store, planSlug, title string) *types.Task {
	t.Helper()
	tk, err := s.CreateTask(context.Background(), planSlug, title, "")
	if err != nil {
		t.Fatalf("CreateTask(%q, %q) failed: %v", planSlug, title, err)
	}
	return tk
}

func kindOf(t *testing.T, err error) engineerr.Kind {
	t.Helper()
	k, ok := engineerr.KindOf(err)
	if !ok {
		t.Fatalf("expected an *engineerr.Error, got %v (%T)", err, err)
	}
	return k
}
