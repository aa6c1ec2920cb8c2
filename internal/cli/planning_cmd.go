package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/cli/formatter"
)

func newPropagateCmd(app *App) *cobra.Command {
	var version string
	var updateParent, asJSON bool

	cmd := &cobra.Command{
		Use:   "propagate ISSUE_ID",
		Short: "Assign a version and its derived dates to an issue",
		Long: `Assign a version to an issue and set its start and due dates from the
project's release timeline. With --update-parent the issue's siblings and
parent get the same version in the same transaction. Omit --version (or pass
"none") to clear the version.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			issue, err := app.Issues.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			versionID, err := resolveVersion(ctx, app, issue.ProjectID, version)
			if err != nil {
				return err
			}

			report, err := app.Planning.Propagate(ctx, issue.ID, versionID, updateParent)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			names, err := versionNamer(ctx, app, issue.ProjectID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatChangeReport(report, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Version name or ID")
	cmd.Flags().BoolVar(&updateParent, "update-parent", false, "Also update siblings and the parent")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newCascadeCmd(app *App) *cobra.Command {
	var version string
	var includeRoot, asJSON bool

	cmd := &cobra.Command{
		Use:   "cascade ROOT_ID",
		Short: "Write a version onto every descendant of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			root, err := app.Issues.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			versionID, err := resolveVersion(ctx, app, root.ProjectID, version)
			if err != nil {
				return err
			}

			result, err := app.Planning.Cascade(ctx, root.ID, versionID, includeRoot)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			names, err := versionNamer(ctx, app, root.ProjectID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCascade(result.Root, result.Descendants, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Version name or ID")
	cmd.Flags().BoolVar(&includeRoot, "include-root", false, "Also assign the version and dates to the root")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newGridCmd(app *App) *cobra.Command {
	var projectRef string
	var asJSON, asTable bool

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Build the Epic × Feature × Version grid",
		Long: `Build the grid index for a project. Output is a table on a terminal and
JSON otherwise; --json and --table force either form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if asJSON && asTable {
				return fmt.Errorf("use either --json or --table, not both")
			}
			project, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			index, err := app.Planning.Grid(ctx, project.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON || (!asTable && !app.isTerminal(out)) {
				return writeJSON(out, index)
			}

			issues, err := app.Issues.ListByProject(ctx, project.ID)
			if err != nil {
				return err
			}
			labels := formatter.GridLabels{Issues: make(map[string]string, len(issues))}
			for _, i := range issues {
				labels.Issues[i.ID] = i.Subject
			}
			if labels.Versions, err = versionNamer(ctx, app, project.ID); err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatGrid(index, labels))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project identifier or ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Force JSON output")
	cmd.Flags().BoolVar(&asTable, "table", false, "Force table output")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report hierarchy problems",
	}
	cmd.AddCommand(newCheckOrphansCmd(app), newCheckIncompleteCmd(app))
	return cmd
}

func newCheckOrphansCmd(app *App) *cobra.Command {
	var projectRef string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List non-epic issues without a parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			orphans, err := app.Planning.Orphans(ctx, project.ID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), orphans)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOrphans(orphans))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project identifier or ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newCheckIncompleteCmd(app *App) *cobra.Command {
	var projectRef string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "incomplete",
		Short: "List features without stories and stories without tasks or tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			found, err := app.Planning.Incomplete(ctx, project.ID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIncomplete(found))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project identifier or ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
