// Package resolver turns a user-supplied task identifier (any of the three
// forms idgen accepts) into the surrogate task_id the storage layer keys
// on, performing the slug:number lookup when needed.
package resolver

import (
	"context"

	"github.com/ajmorgan/taskgraph/internal/idgen"
)

// TaskLookup is the minimal storage capability Resolve needs: resolving a
// (plan slug, plan_task_number) pair to a surrogate task id. *sqlite.Store
// satisfies this.
type TaskLookup interface {
	GetTaskByPlanAndNumber(ctx context.Context, slug string, number int64) (int64, bool, error)
}

// Resolve parses input and, for the slug:number form, looks it up against
// store. A structurally valid identifier that names no task returns
// (0, false, nil); the caller decides how to present "not found".
func Resolve(ctx context.Context, store TaskLookup, input string) (int64, bool, error) {
	parsed, err := idgen.ParseTaskIdFlexible(input)
	if err != nil {
		return 0, false, err
	}
	if parsed.Slug == "" {
		return parsed.SurrogateID, true, nil
	}

	id, ok, err := store.GetTaskByPlanAndNumber(ctx, parsed.Slug, parsed.Number)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, nil
	}
	return id, true, nil
}
