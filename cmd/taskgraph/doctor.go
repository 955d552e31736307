package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run integrity checks against the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		report, err := store.HealthCheck(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(report)
			return nil
		}

		for _, e := range report.Errors {
			if e.Detail != "" {
				fmt.Printf("ERROR [%s] %s: %s\n", e.Check, e.Message, e.Detail)
			} else {
				fmt.Printf("ERROR [%s] %s\n", e.Check, e.Message)
			}
		}
		for _, w := range report.Warnings {
			if w.Detail != "" {
				fmt.Printf("WARN  [%s] %s: %s\n", w.Check, w.Message, w.Detail)
			} else {
				fmt.Printf("WARN  [%s] %s\n", w.Check, w.Message)
			}
		}
		if len(report.Errors) == 0 && len(report.Warnings) == 0 {
			fmt.Println("ok")
		}
		return nil
	},
}
