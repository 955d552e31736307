package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var blockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "List open or in-progress tasks with an incomplete direct blocker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.GetBlockedTasks(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			out := make([]taskJSON, len(entries))
			for i, e := range entries {
				n := e.DirectBlockers
				out[i] = toTaskJSON(e.Task)
				out[i].DirectBlockers = &n
			}
			printJSON(out)
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s\t[%s]\t%s (%d direct blocker(s))\n", e.Task.CanonicalID(), e.Task.Status, e.Task.Title, e.DirectBlockers)
		}
		return nil
	},
}
