package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajmorgan/taskgraph/internal/resolver"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage blocking dependencies between tasks",
}

var depAddCmd = &cobra.Command{
	Use:   "add <task-id> <blocker-id>",
	Short: "Record that task-id is blocked by blocker-id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		taskID, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}
		blockerID, ok, err := resolver.Resolve(cmd.Context(), store, args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[1])
		}

		return store.AddDependency(cmd.Context(), taskID, blockerID)
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove <task-id> <blocker-id>",
	Short: "Remove a blocking dependency edge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		taskID, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}
		blockerID, ok, err := resolver.Resolve(cmd.Context(), store, args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[1])
		}

		return store.RemoveDependency(cmd.Context(), taskID, blockerID)
	},
}

var depBlockersCmd = &cobra.Command{
	Use:   "blockers <task-id>",
	Short: "List every task that transitively blocks task-id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		taskID, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}

		entries, err := store.GetBlockers(cmd.Context(), taskID)
		if err != nil {
			return err
		}
		if jsonOutput {
			out := make([]taskJSON, len(entries))
			for i, e := range entries {
				depth := e.Depth
				out[i] = toTaskJSON(e.Task)
				out[i].Depth = &depth
			}
			printJSON(out)
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s\t[%s]\t%s (depth %d)\n", e.Task.CanonicalID(), e.Task.Status, e.Task.Title, e.Depth)
		}
		return nil
	},
}

var depDependentsCmd = &cobra.Command{
	Use:   "dependents <task-id>",
	Short: "List every task that transitively depends on task-id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		taskID, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}

		entries, err := store.GetDependents(cmd.Context(), taskID)
		if err != nil {
			return err
		}
		if jsonOutput {
			out := make([]taskJSON, len(entries))
			for i, e := range entries {
				depth := e.Depth
				out[i] = toTaskJSON(e.Task)
				out[i].Depth = &depth
			}
			printJSON(out)
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s\t[%s]\t%s (depth %d)\n", e.Task.CanonicalID(), e.Task.Status, e.Task.Title, e.Depth)
		}
		return nil
	},
}

func init() {
	depCmd.AddCommand(depAddCmd, depRemoveCmd, depBlockersCmd, depDependentsCmd)
}
