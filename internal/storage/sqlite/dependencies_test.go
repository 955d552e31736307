package sqlite_test

import (
	"context"
	"testing"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
)

func TestAddDependencyRejectsSelfEdge(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "self", "Self")
	a := mustCreateTask(t, s, "self", "A")

	err := s.AddDependency(context.Background(), a.ID, a.ID)
	if kindOf(t, err) != engineerr.InvalidInput {
		t.Errorf("got kind %v, want InvalidInput", err)
	}
}

func TestAddDependencyMissingEndpoint(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "miss", "Miss")
	a := mustCreateTask(t, s, "miss", "A")

	err := s.AddDependency(context.Background(), a.ID, 99999)
	if kindOf(t, err) != engineerr.InvalidData {
		t.Errorf("got kind %v, want InvalidData (not StepFailed)", err)
	}
}

// Scenario 2: direct cycle rejected.
func TestAddDependencyDirectCycleRejected(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "cycle", "Cycle")
	a := mustCreateTask(t, s, "cycle", "A")
	b := mustCreateTask(t, s, "cycle", "B")

	if err := s.AddDependency(context.Background(), a.ID, b.ID); err != nil {
		t.Fatalf("first AddDependency failed: %v", err)
	}
	err := s.AddDependency(context.Background(), b.ID, a.ID)
	if kindOf(t, err) != engineerr.CycleDetected {
		t.Errorf("got kind %v, want CycleDetected", err)
	}

	blockers, err := s.GetBlockers(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetBlockers failed: %v", err)
	}
	if len(blockers) != 1 {
		t.Errorf("expected exactly one dependency row surviving, GetBlockers(A) = %+v", blockers)
	}
}

func TestDetectCycleOnDeepChain(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "chain", "Chain")

	const depth = 200
	ids := make([]int64, depth)
	for i := 0; i < depth; i++ {
		tk := mustCreateTask(t, s, "chain", "T")
		ids[i] = tk.ID
		if i > 0 {
			if err := s.AddDependency(context.Background(), ids[i-1], ids[i]); err != nil {
				t.Fatalf("AddDependency at depth %d failed: %v", i, err)
			}
		}
	}

	// Closing the chain into a ring must be rejected.
	err := s.AddDependency(context.Background(), ids[depth-1], ids[0])
	if kindOf(t, err) != engineerr.CycleDetected {
		t.Errorf("closing 200-deep chain: got kind %v, want CycleDetected", err)
	}
}

// Scenario 3: diamond blockers with shortest depth.
func TestGetBlockersDiamondShortestDepth(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "graph", "Graph")
	a := mustCreateTask(t, s, "graph", "A")
	b := mustCreateTask(t, s, "graph", "B")
	c := mustCreateTask(t, s, "graph", "C")
	d := mustCreateTask(t, s, "graph", "D")

	for _, e := range []struct{ task, blocksOn int64 }{
		{b.ID, a.ID}, // B blocked by A
		{c.ID, a.ID}, // C blocked by A
		{d.ID, b.ID}, // D blocked by B
		{d.ID, c.ID}, // D blocked by C
	} {
		if err := s.AddDependency(context.Background(), e.task, e.blocksOn); err != nil {
			t.Fatalf("AddDependency(%d,%d) failed: %v", e.task, e.blocksOn, err)
		}
	}

	blockers, err := s.GetBlockers(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("GetBlockers failed: %v", err)
	}
	if len(blockers) != 3 {
		t.Fatalf("GetBlockers(D) returned %d entries, want 3: %+v", len(blockers), blockers)
	}

	depthByID := map[int64]int{}
	for _, e := range blockers {
		depthByID[e.Task.ID] = e.Depth
	}
	if depthByID[b.ID] != 1 {
		t.Errorf("depth(B) = %d, want 1", depthByID[b.ID])
	}
	if depthByID[c.ID] != 1 {
		t.Errorf("depth(C) = %d, want 1", depthByID[c.ID])
	}
	if depthByID[a.ID] != 2 {
		t.Errorf("depth(A) = %d, want 2 (shortest path, not 2+2)", depthByID[a.ID])
	}
}

func TestGetDependentsInverseDirection(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "inv", "Inverse")
	a := mustCreateTask(t, s, "inv", "A")
	b := mustCreateTask(t, s, "inv", "B")

	if err := s.AddDependency(context.Background(), b.ID, a.ID); err != nil {
		t.Fatalf("AddDependency failed: %v", err)
	}

	dependents, err := s.GetDependents(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetDependents failed: %v", err)
	}
	if len(dependents) != 1 || dependents[0].Task.ID != b.ID || dependents[0].Depth != 1 {
		t.Errorf("GetDependents(A) = %+v, want [{B depth 1}]", dependents)
	}
}

// Idempotence: removeDependency then a second removeDependency of the same
// pair succeeds then fails with InvalidData.
func TestRemoveDependencyIdempotence(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "rm", "Remove")
	a := mustCreateTask(t, s, "rm", "A")
	b := mustCreateTask(t, s, "rm", "B")

	if err := s.AddDependency(context.Background(), b.ID, a.ID); err != nil {
		t.Fatalf("AddDependency failed: %v", err)
	}
	if err := s.RemoveDependency(context.Background(), b.ID, a.ID); err != nil {
		t.Fatalf("first RemoveDependency failed: %v", err)
	}
	err := s.RemoveDependency(context.Background(), b.ID, a.ID)
	if kindOf(t, err) != engineerr.InvalidData {
		t.Errorf("second RemoveDependency: got kind %v, want InvalidData", err)
	}
}
