package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/roomview-sql/roomview/internal/services"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every managed view and function",
	Long: `List scans the configured source directories and prints a report of
every recognized view and function: its kind, the leading comment block
from its source file, and its dependency edges in both directions.

No warehouse connection is made; the report reflects the .sql sources,
not the warehouse catalog.

Examples:
  roomview list
  roomview list --directories finance,reporting
  roomview list --settings deploy/settings.yaml`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listFlags targetFlags

func init() {
	rootCmd.AddCommand(listCmd)
	registerTargetFlags(listCmd, &listFlags)
}

func runList(cmd *cobra.Command, _ []string) error {
	env, err := buildEnvironment(&listFlags, getVerboseFlag(cmd))
	if err != nil {
		return err
	}
	return services.WriteReport(env.graph, os.Stdout)
}
