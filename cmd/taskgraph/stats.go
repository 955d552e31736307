package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show system-wide plan and task counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.GetSystemStats(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(stats)
			return nil
		}
		fmt.Printf("plans:     %d total, %d completed\n", stats.TotalPlans, stats.CompletedPlans)
		fmt.Printf("tasks:     %d total, %d open, %d in progress, %d completed\n",
			stats.TotalTasks, stats.OpenTasks, stats.InProgressTasks, stats.CompletedTasks)
		fmt.Printf("scheduling: %d ready, %d blocked\n", stats.ReadyTasks, stats.BlockedTasks)
		return nil
	},
}
