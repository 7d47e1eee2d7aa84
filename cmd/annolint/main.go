// annolint audits crowd-sourced image-annotation tasks for quality defects
// before they are accepted: occlusion consistency, stray clicks, and
// background-color consistency.
//
// Usage:
//
//	annolint audit --project=<name>             # Fetch from the platform and audit
//	annolint audit --file=tasks.json            # Audit a local task dump
//	annolint audit --project=<name> --cached    # Audit the locally cached batch
//	annolint fetch --project=<name>             # Fetch and cache a batch
//	annolint tasks                              # List cached batches
//	annolint serve                              # MCP server over stdio
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
