package taskgraph_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ajmorgan/taskgraph"
)

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "engine.db")

	store, err := taskgraph.Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if store == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestConstants(t *testing.T) {
	if taskgraph.StatusOpen != "open" {
		t.Errorf("StatusOpen = %q, want %q", taskgraph.StatusOpen, "open")
	}
	if taskgraph.StatusInProgress != "in_progress" {
		t.Errorf("StatusInProgress = %q, want %q", taskgraph.StatusInProgress, "in_progress")
	}
	if taskgraph.StatusCompleted != "completed" {
		t.Errorf("StatusCompleted = %q, want %q", taskgraph.StatusCompleted, "completed")
	}
}

func TestEndToEndPlanAndTask(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "engine.db")
	store, err := taskgraph.Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.CreatePlan(ctx, "ui", "UI work", "", nil); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	task, err := store.CreateTask(ctx, "ui", "T1", "")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.CanonicalID() != "ui:001" {
		t.Errorf("CanonicalID = %q, want %q", task.CanonicalID(), "ui:001")
	}
}
