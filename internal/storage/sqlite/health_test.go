package sqlite_test

import (
	"context"
	"testing"
)

func TestHealthCheckCleanDatabase(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "clean", "Clean")
	task := mustCreateTask(t, s, "clean", "T")
	if err := s.StartTask(context.Background(), task.ID); err != nil {
		t.Fatalf("StartTask failed: %v", err)
	}

	report, err := s.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Errorf("expected no errors on a clean database, got %+v", report.Errors)
	}
}

func TestHealthCheckFlagsEmptyPlan(t *testing.T) {
	s := newStore(t)
	mustCreatePlan(t, s, "empty", "Empty")

	report, err := s.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}

	found := false
	for _, w := range report.Warnings {
		if w.Check == "empty-plans" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an empty-plans warning, got %+v", report.Warnings)
	}
}
