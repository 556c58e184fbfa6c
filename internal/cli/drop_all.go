package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dropAllCmd = &cobra.Command{
	Use:   "drop-all",
	Short: "Drop every managed statement",
	Long: `Drop-all removes every view and function declared in the configured
source directories. Drop order does not matter: the cascading drop
removes dependents transitively, and already-absent objects are skipped.

This destroys every managed object, so it asks for confirmation unless
--force is given.

Examples:
  roomview drop-all
  roomview drop-all --force --connection staging`,
	Args: cobra.NoArgs,
	RunE: runDropAll,
}

var dropAllFlags struct {
	target targetFlags
	force  bool
}

func init() {
	rootCmd.AddCommand(dropAllCmd)
	registerTargetFlags(dropAllCmd, &dropAllFlags.target)
	dropAllCmd.Flags().BoolVar(&dropAllFlags.force, "force", false,
		"Skip the confirmation prompt (for CI/CD pipelines)")
}

func runDropAll(cmd *cobra.Command, _ []string) error {
	env, err := buildEnvironment(&dropAllFlags.target, getVerboseFlag(cmd))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(dropAllFlags.target.timeout)
	defer cancel()

	executor, cleanup, err := env.connect(ctx, dropAllFlags.target.connection)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := env.syncService(executor, dropAllFlags.force)
	if err := svc.DropAll(ctx, env.graph); err != nil {
		return fmt.Errorf("drop-all failed: %w", err)
	}
	return nil
}
