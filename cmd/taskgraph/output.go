package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ajmorgan/taskgraph/internal/types"
)

// taskJSON is the wire shape of spec §6: id is the canonical slug:NNN form,
// internal_id is the surrogate key for callers that need it.
type taskJSON struct {
	ID          string  `json:"id"`
	InternalID  int64   `json:"internal_id"`
	PlanSlug    string  `json:"plan_slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
	StartedAt   *int64  `json:"started_at"`
	CompletedAt *int64  `json:"completed_at"`
	Depth       *int    `json:"depth,omitempty"`
	DirectBlockers *int `json:"direct_blockers,omitempty"`
}

func toTaskJSON(t types.Task) taskJSON {
	return taskJSON{
		ID:          t.CanonicalID(),
		InternalID:  t.ID,
		PlanSlug:    t.PlanSlug,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		StartedAt:   t.StartedAt,
		CompletedAt: t.CompletedAt,
	}
}

func printTask(t types.Task) {
	if jsonOutput {
		printJSON(toTaskJSON(t))
		return
	}
	fmt.Printf("%s\t[%s]\t%s\n", t.CanonicalID(), t.Status, t.Title)
}

func printTasks(tasks []types.Task) {
	if jsonOutput {
		out := make([]taskJSON, len(tasks))
		for i, t := range tasks {
			out[i] = toTaskJSON(t)
		}
		printJSON(out)
		return
	}
	for _, t := range tasks {
		fmt.Printf("%s\t[%s]\t%s\n", t.CanonicalID(), t.Status, t.Title)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
