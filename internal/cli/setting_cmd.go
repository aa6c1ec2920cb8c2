package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/cli/formatter"
)

func newSettingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Read and write role bindings and the parent date mode",
		Long: `Settings are resolved project override first, then global, then default.

Keys:
  tracker_epic, tracker_feature, tracker_user_story,
  tracker_task, tracker_test, tracker_bug   tracker name bound to each role
  parent_issue_dates                        derived | independent`,
	}
	cmd.AddCommand(newSettingSetCmd(app), newSettingGetCmd(app), newSettingListCmd(app))
	return cmd
}

// settingScope resolves --project to a project id; empty means global.
func settingScope(ctx context.Context, app *App, projectRef string) (id, label string, err error) {
	if projectRef == "" {
		return "", "global", nil
	}
	p, err := resolveProject(ctx, app, projectRef)
	if err != nil {
		return "", "", err
	}
	return p.ID, p.Identifier, nil
}

func newSettingSetCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Write a setting (global unless --project is given)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, label, err := settingScope(ctx, app, projectRef)
			if err != nil {
				return err
			}
			if err := app.Settings.Set(ctx, projectID, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s (%s)\n", args[0], args[1], label)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project identifier or ID")
	return cmd
}

func newSettingGetCmd(app *App) *cobra.Command {
	var projectRef string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Show the effective value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, _, err := settingScope(ctx, app, projectRef)
			if err != nil {
				return err
			}
			value, err := app.Settings.Get(ctx, projectID, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", value.Key, value.Value, value.Source)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project identifier or ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newSettingListCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every effective setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, label, err := settingScope(ctx, app, projectRef)
			if err != nil {
				return err
			}
			values, err := app.Settings.List(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(label, values))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project identifier or ID")
	return cmd
}
