package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var readyCmd = &cobra.Command{
	Use:   "ready [limit]",
	Short: "List open tasks with no incomplete blocker",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			limit = n
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		tasks, err := store.GetReadyTasks(cmd.Context(), limit)
		if err != nil {
			return err
		}
		printTasks(tasks)
		return nil
	},
}
