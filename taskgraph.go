// Package taskgraph provides a minimal public API for extending the
// dependency engine with custom orchestration.
//
// Most extensions should use the Store type directly against an opened
// database. This package exports only the essential types and the
// constructor needed for Go-based tooling that wants to use the engine's
// storage layer programmatically, without depending on cmd/taskgraph.
package taskgraph

import (
	"github.com/ajmorgan/taskgraph/internal/storage/sqlite"
	"github.com/ajmorgan/taskgraph/internal/types"
)

// Core types for working with plans and tasks.
type (
	Plan         = types.Plan
	PlanSummary  = types.PlanSummary
	Task         = types.Task
	Status       = types.Status
	Dependency   = types.Dependency
	BlockerEntry = types.BlockerEntry
	BlockedEntry = types.BlockedEntry
	SystemStats  = types.SystemStats
	HealthReport = types.HealthReport
)

// Status constants.
const (
	StatusOpen       = types.StatusOpen
	StatusInProgress = types.StatusInProgress
	StatusCompleted  = types.StatusCompleted
)

// Store is the engine's storage component: plans, tasks, dependencies, and
// the scheduling queries built on top of them.
type Store = sqlite.Store

// Open opens (creating if absent) a dependency-engine database at path.
func Open(path string) (*Store, error) {
	return sqlite.Open(path)
}
