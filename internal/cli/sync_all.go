package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncAllCmd = &cobra.Command{
	Use:   "sync-all",
	Short: "Drop and recreate every managed statement",
	Long: `Sync-all drops and recreates every view and function declared in the
configured source directories, walking the dependency graph from its
leaves so each statement's dependencies are recreated before it is.

This touches every managed object, so it asks for confirmation unless
--force is given.

Examples:
  roomview sync-all
  roomview sync-all --force
  roomview sync-all --connection staging --directories finance`,
	Args: cobra.NoArgs,
	RunE: runSyncAll,
}

var syncAllFlags struct {
	target targetFlags
	force  bool
}

func init() {
	rootCmd.AddCommand(syncAllCmd)
	registerTargetFlags(syncAllCmd, &syncAllFlags.target)
	syncAllCmd.Flags().BoolVar(&syncAllFlags.force, "force", false,
		"Skip the confirmation prompt (for CI/CD pipelines)")
}

func runSyncAll(cmd *cobra.Command, _ []string) error {
	env, err := buildEnvironment(&syncAllFlags.target, getVerboseFlag(cmd))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(syncAllFlags.target.timeout)
	defer cancel()

	executor, cleanup, err := env.connect(ctx, syncAllFlags.target.connection)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := env.syncService(executor, syncAllFlags.force)
	if err := svc.SyncAll(ctx, env.graph); err != nil {
		return fmt.Errorf("sync-all failed: %w", err)
	}
	return nil
}
