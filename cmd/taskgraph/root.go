package main

import (
	"github.com/spf13/cobra"

	"github.com/ajmorgan/taskgraph/internal/storage/sqlite"
)

var (
	dbPath     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:           "taskgraph",
	Short:         "Local task-dependency engine: plans, tasks, and blocking dependencies",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "taskgraph.db", "path to the database file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of text")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(depCmd)
	rootCmd.AddCommand(readyCmd)
	rootCmd.AddCommand(blockedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(doctorCmd)
}

func openStore() (*sqlite.Store, error) {
	return sqlite.Open(dbPath)
}
