package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project plan from a YAML or JSON file",
		Long: `Import a project, its settings, versions and issue hierarchy from a plan
file. The whole file is validated first and written in one transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported project %s [%s]: %d setting(s), %d version(s), %d issue(s)\n",
				result.Project.Name, result.Project.Identifier,
				result.SettingCount, result.VersionCount, result.IssueCount)
			return nil
		},
	}
}
