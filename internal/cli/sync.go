package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync [name ...]",
	Short: "Drop and recreate the named statements and their dependents",
	Long: `Sync drops the named views/functions and recreates them together with
everything the cascading drop collaterally destroyed, in an order where
each statement's dependencies exist before it is created.

Targets are given as statement names, as source files via --file (the
names the file declares are used), or both.

Examples:
  roomview sync vw_daily_totals
  roomview sync --file sql/views/reporting.sql
  roomview sync vw_orders vw_customers --connection staging`,
	RunE: runSync,
}

var syncFlags struct {
	target targetFlags
	files  []string
}

func init() {
	rootCmd.AddCommand(syncCmd)
	registerTargetFlags(syncCmd, &syncFlags.target)
	syncCmd.Flags().StringArrayVarP(&syncFlags.files, "file", "f", nil,
		"Source file whose declared statements are synced (can be repeated)")
}

func runSync(cmd *cobra.Command, args []string) error {
	env, err := buildEnvironment(&syncFlags.target, getVerboseFlag(cmd))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(syncFlags.target.timeout)
	defer cancel()

	executor, cleanup, err := env.connect(ctx, syncFlags.target.connection)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := env.syncService(executor, false)
	if err := svc.Sync(ctx, env.graph, args, syncFlags.files); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}
