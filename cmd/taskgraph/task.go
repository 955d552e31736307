package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajmorgan/taskgraph/internal/resolver"
	"github.com/ajmorgan/taskgraph/internal/types"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskCreateCmd = &cobra.Command{
	Use:   "create <plan-slug> <title>",
	Short: "Create a task in a plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		task, err := store.CreateTask(cmd.Context(), args[0], args[1], description)
		if err != nil {
			return err
		}
		printTask(*task)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		statusFlag, _ := cmd.Flags().GetString("status")
		planFlag, _ := cmd.Flags().GetString("plan")

		var status *types.Status
		if statusFlag != "" {
			st, err := types.ParseStatus(statusFlag)
			if err != nil {
				return err
			}
			status = &st
		}
		var planSlug *string
		if planFlag != "" {
			planSlug = &planFlag
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		tasks, err := store.ListTasks(cmd.Context(), status, planSlug)
		if err != nil {
			return err
		}
		printTasks(tasks)
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show a task (accepts bare number, zero-padded number, or slug:number)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}

		task, err := store.GetTask(cmd.Context(), id)
		if err != nil {
			return err
		}
		if task == nil {
			return fmt.Errorf("task %q not found", args[0])
		}
		printTask(*task)
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task's title and/or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title, description *string
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			description = &v
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}
		return store.UpdateTask(cmd.Context(), id, title, description, nil)
	},
}

var taskStartCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Move a task to in_progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}
		return store.StartTask(cmd.Context(), id)
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}
		return store.CompleteTask(cmd.Context(), id)
	},
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen <task-id>",
	Short: "Reopen a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}
		return store.ReopenTask(cmd.Context(), id)
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task; refuses if other tasks depend on it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		id, ok, err := resolver.Resolve(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}
		return store.DeleteTask(cmd.Context(), id)
	},
}

func init() {
	taskCreateCmd.Flags().String("description", "", "task description")
	taskListCmd.Flags().String("status", "", "filter by status (open|in_progress|completed)")
	taskListCmd.Flags().String("plan", "", "filter by plan slug")
	taskUpdateCmd.Flags().String("title", "", "new title")
	taskUpdateCmd.Flags().String("description", "", "new description")

	taskCmd.AddCommand(taskCreateCmd, taskListCmd, taskShowCmd, taskUpdateCmd,
		taskStartCmd, taskCompleteCmd, taskReopenCmd, taskDeleteCmd)
}
