package sqlite_test

import (
	"context"
	"testing"
)

// Scenario 4: ready flips on completion.
func TestGetReadyTasksFlipsOnCompletion(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "deploy", "Deploy")
	t1 := mustCreateTask(t, s, "deploy", "T1")
	t2 := mustCreateTask(t, s, "deploy", "T2")

	if err := s.AddDependency(context.Background(), t2.ID, t1.ID); err != nil {
		t.Fatalf("AddDependency failed: %v", err)
	}

	ready, err := s.GetReadyTasks(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetReadyTasks failed: %v", err)
	}
	if len(ready) != 1 || ready[0].ID != t1.ID {
		t.Fatalf("GetReadyTasks before completion = %+v, want [T1]", ready)
	}

	if err := s.StartTask(context.Background(), t1.ID); err != nil {
		t.Fatalf("StartTask failed: %v", err)
	}
	if err := s.CompleteTask(context.Background(), t1.ID); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	ready, err = s.GetReadyTasks(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetReadyTasks failed: %v", err)
	}
	if len(ready) != 1 || ready[0].ID != t2.ID {
		t.Fatalf("GetReadyTasks after completion = %+v, want [T2]", ready)
	}
}

func TestGetReadyTasksUnboundedLimit(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "many", "Many")
	for i := 0; i < 5; i++ {
		mustCreateTask(t, s, "many", "T")
	}

	ready, err := s.GetReadyTasks(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetReadyTasks failed: %v", err)
	}
	if len(ready) != 5 {
		t.Errorf("GetReadyTasks(limit=0) returned %d, want 5 (unbounded)", len(ready))
	}

	ready, err = s.GetReadyTasks(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetReadyTasks failed: %v", err)
	}
	if len(ready) != 2 {
		t.Errorf("GetReadyTasks(limit=2) returned %d, want 2", len(ready))
	}
}

// Scenario 5: blocked ordering.
func TestGetBlockedTasksOrdering(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "ord", "Ordering")
	b1 := mustCreateTask(t, s, "ord", "B1")
	b2 := mustCreateTask(t, s, "ord", "B2")
	b3 := mustCreateTask(t, s, "ord", "B3")
	x := mustCreateTask(t, s, "ord", "X")
	y := mustCreateTask(t, s, "ord", "Y")
	z := mustCreateTask(t, s, "ord", "Z")

	deps := []struct{ task, blocksOn int64 }{
		{x.ID, b1.ID},
		{y.ID, b1.ID}, {y.ID, b2.ID},
		{z.ID, b1.ID}, {z.ID, b2.ID}, {z.ID, b3.ID},
	}
	for _, d := range deps {
		if err := s.AddDependency(context.Background(), d.task, d.blocksOn); err != nil {
			t.Fatalf("AddDependency(%d,%d) failed: %v", d.task, d.blocksOn, err)
		}
	}

	blocked, err := s.GetBlockedTasks(context.Background())
	if err != nil {
		t.Fatalf("GetBlockedTasks failed: %v", err)
	}
	if len(blocked) != 3 {
		t.Fatalf("GetBlockedTasks returned %d entries, want 3: %+v", len(blocked), blocked)
	}

	wantOrder := []int64{z.ID, y.ID, x.ID}
	wantCounts := []int{3, 2, 1}
	for i, e := range blocked {
		if e.Task.ID != wantOrder[i] {
			t.Errorf("position %d: task id = %d, want %d", i, e.Task.ID, wantOrder[i])
		}
		if e.DirectBlockers != wantCounts[i] {
			t.Errorf("position %d: direct blockers = %d, want %d", i, e.DirectBlockers, wantCounts[i])
		}
	}
}
