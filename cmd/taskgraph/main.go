// Command taskgraph is a thin CLI over the dependency engine: it maps the
// subcommands of spec §6's "Consumed CLI surface" onto the storage layer
// and renders either plain text or JSON. It does not do argument
// fuzz-matching, colored rendering, or workspace auto-discovery — those
// remain an external collaborator's job.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
