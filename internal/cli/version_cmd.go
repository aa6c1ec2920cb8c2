package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/cli/formatter"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

func newVersionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Manage project versions (releases)",
	}
	cmd.AddCommand(newVersionAddCmd(app), newVersionListCmd(app))
	return cmd
}

func newVersionAddCmd(app *App) *cobra.Command {
	var projectRef, name, effective string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			date, err := parseOptionalDate("--effective-date", effective)
			if err != nil {
				return err
			}

			v := &domain.Version{ProjectID: project.ID, Name: name, EffectiveDate: date}
			if err := app.Versions.Create(ctx, v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created version %s (%s) in %s\n", v.Name, v.ID, project.Identifier)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project identifier or ID")
	cmd.Flags().StringVar(&name, "name", "", "Version name")
	cmd.Flags().StringVar(&effective, "effective-date", "", "Release date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newVersionListCmd(app *App) *cobra.Command {
	var projectRef string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's versions in store order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			versions, err := app.Versions.ListByProject(ctx, project.ID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), versions)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatVersionList(project, versions))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project identifier or ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
