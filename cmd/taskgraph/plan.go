package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage plans",
}

var planCreateCmd = &cobra.Command{
	Use:   "create <slug> <title>",
	Short: "Create a plan",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		plan, err := store.CreatePlan(cmd.Context(), args[0], args[1], description, nil)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(plan)
			return nil
		}
		fmt.Printf("created plan %s (id %d)\n", plan.Slug, plan.ID)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		plans, err := store.ListPlans(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(plans)
			return nil
		}
		for _, p := range plans {
			fmt.Printf("%s\t[%s]\t%s (%d/%d completed)\n", p.Slug, p.DerivedStatus(), p.Title, p.CompletedTasks, p.TotalTasks)
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.GetPlanSummary(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if summary == nil {
			return fmt.Errorf("plan %q not found", args[0])
		}
		if jsonOutput {
			printJSON(summary)
			return nil
		}
		fmt.Printf("%s: %s\nstatus: %s\ntasks: %d total, %d open, %d in progress, %d completed\n",
			summary.Slug, summary.Title, summary.DerivedStatus(), summary.TotalTasks, summary.OpenTasks, summary.InProgressTasks, summary.CompletedTasks)
		return nil
	},
}

var planUpdateCmd = &cobra.Command{
	Use:   "update <slug>",
	Short: "Update a plan's title and/or description",
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

		return store.UpdatePlan(cmd.Context(), args[0], title, description)
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a plan, cascading to its tasks and dependencies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.DeletePlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("deleted plan %s (%d task(s) removed)\n", args[0], n)
		return nil
	},
}

func init() {
	planCreateCmd.Flags().String("description", "", "plan description")
	planUpdateCmd.Flags().String("title", "", "new title")
	planUpdateCmd.Flags().String("description", "", "new description")

	planCmd.AddCommand(planCreateCmd, planListCmd, planShowCmd, planUpdateCmd, planDeleteCmd)
}
