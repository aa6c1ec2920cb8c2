package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/cli/formatter"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

func newIssueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Manage issues in the Epic / Feature / UserStory hierarchy",
	}
	cmd.AddCommand(
		newIssueAddCmd(app),
		newIssueShowCmd(app),
		newIssueMoveCmd(app),
		newIssueTreeCmd(app),
	)
	return cmd
}

func newIssueAddCmd(app *App) *cobra.Command {
	var projectRef, tracker, roleName, subject, parent, version, start, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an issue",
		Long: `Create an issue. Give either --tracker (the concrete tracker name) or
--role (epic, feature, user_story, task, test, bug), which is mapped to the
project's bound tracker.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}

			switch {
			case tracker != "" && roleName != "":
				return errors.New("use either --tracker or --role, not both")
			case roleName != "":
				role, err := domain.ParseRole(roleName)
				if err != nil {
					return err
				}
				tracker = app.Settings.Roles(ctx, project.ID).Tracker(role)
			case tracker == "":
				return errors.New("one of --tracker or --role is required")
			}

			issue := &domain.Issue{
				ProjectID: project.ID,
				Tracker:   tracker,
				Subject:   subject,
			}
			if parent != "" {
				issue.ParentID = &parent
			}
			if issue.VersionID, err = resolveVersion(ctx, app, project.ID, version); err != nil {
				return err
			}
			if issue.StartDate, err = parseOptionalDate("--start", start); err != nil {
				return err
			}
			if issue.DueDate, err = parseOptionalDate("--due", due); err != nil {
				return err
			}

			if err := app.Issues.Create(ctx, issue); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q (%s)\n", issue.Tracker, issue.Subject, issue.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&projectRef, "project", "", "Project identifier or ID")
	f.StringVar(&tracker, "tracker", "", "Tracker name")
	f.StringVar(&roleName, "role", "", "Role: epic, feature, user_story, task, test, bug")
	f.StringVar(&subject, "subject", "", "Issue subject")
	f.StringVar(&parent, "parent", "", "Parent issue ID")
	f.StringVar(&version, "version", "", "Version name or ID")
	f.StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	f.StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newIssueShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ISSUE_ID",
		Short: "Show an issue with its parent and children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			issue, err := app.Issues.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			children, err := app.Issues.ListChildren(ctx, issue.ID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					*domain.Issue
					Children []*domain.Issue `json:"children"`
				}{issue, children})
			}

			detail := formatter.IssueDetail{
				Issue:    issue,
				Children: children,
				Roles:    app.Settings.Roles(ctx, issue.ProjectID),
			}
			if issue.HasParent() {
				if detail.Parent, err = app.Issues.GetByID(ctx, *issue.ParentID); err != nil {
					return fmt.Errorf("loading parent: %w", err)
				}
			}
			if detail.Versions, err = versionNamer(ctx, app, issue.ProjectID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIssueDetail(detail))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newIssueMoveCmd(app *App) *cobra.Command {
	var parent string
	var detach bool

	cmd := &cobra.Command{
		Use:   "move ISSUE_ID",
		Short: "Move an issue under a new parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent = strings.TrimSpace(parent)
			switch {
			case detach && parent != "":
				return errors.New("use either --parent or --detach, not both")
			case !detach && parent == "":
				return errors.New("one of --parent or --detach is required")
			}

			var parentID *string
			if !detach {
				parentID = &parent
			}
			if err := app.Issues.SetParent(cmd.Context(), args[0], parentID); err != nil {
				return err
			}
			if detach {
				fmt.Fprintf(cmd.OutOrStdout(), "Detached %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %s under %s\n", args[0], parent)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "New parent issue ID")
	cmd.Flags().BoolVar(&detach, "detach", false, "Remove the parent")
	return cmd
}

func newIssueTreeCmd(app *App) *cobra.Command {
	var projectRef string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the project's issue hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			project, err := resolveProject(ctx, app, projectRef)
			if err != nil {
				return err
			}
			issues, err := app.Issues.ListByProject(ctx, project.ID)
			if err != nil {
				return err
			}
			names, err := versionNamer(ctx, app, project.ID)
			if err != nil {
				return err
			}
			roleMap := app.Settings.Roles(ctx, project.ID)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIssueTree(project, issues, roleMap, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project identifier or ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
