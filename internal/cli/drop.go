package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop [name ...]",
	Short: "Drop the named statements",
	Long: `Drop removes the named views/functions from the warehouse. Objects that
depend on them are removed by the warehouse's cascading drop and are NOT
recreated; use sync for drop-and-recreate.

Targets are given as statement names, as source files via --file (the
names the file declares are used), or both.

Examples:
  roomview drop vw_daily_totals
  roomview drop --file sql/views/deprecated.sql`,
	RunE: runDrop,
}

var dropFlags struct {
	target targetFlags
	files  []string
}

func init() {
	rootCmd.AddCommand(dropCmd)
	registerTargetFlags(dropCmd, &dropFlags.target)
	dropCmd.Flags().StringArrayVarP(&dropFlags.files, "file", "f", nil,
		"Source file whose declared statements are dropped (can be repeated)")
}

func runDrop(cmd *cobra.Command, args []string) error {
	env, err := buildEnvironment(&dropFlags.target, getVerboseFlag(cmd))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(dropFlags.target.timeout)
	defer cancel()

	executor, cleanup, err := env.connect(ctx, dropFlags.target.connection)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := env.syncService(executor, false)
	if err := svc.Drop(ctx, env.graph, args, dropFlags.files); err != nil {
		return fmt.Errorf("drop failed: %w", err)
	}
	return nil
}
