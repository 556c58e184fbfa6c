// Package cli wires the roomview commands: flag parsing, settings
// loading, connection setup, and dispatch into the sync service.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roomview",
	Short: "Manage dependent views and functions in a columnar warehouse",
	Long: `roomview keeps a warehouse's views and functions in sync with the SQL
files that define them.

The warehouse's DROP ... CASCADE destroys every dependent object, so
recreating one view can silently take a whole reporting layer with it.
roomview scans your .sql sources, infers the dependency graph between the
declared views and functions, and drops and recreates them in an order
that never references a missing object.

Connections and source directories are named in settings.yaml; every
command accepts --connection and --directories to pick among them.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or selectors)
  3  - Panic or unexpected system error
  10 - Invalid settings file
  11 - Warehouse connection failed
  12 - User declined the confirmation prompt
  13 - SQL execution failed
  14 - Requested statement not found in the sources
  15 - Dependency graph error (duplicate name or cycle)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
