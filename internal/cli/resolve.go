package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/cli/formatter"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

const dateLayout = "2006-01-02"

func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("project is required (use --project)")
	}
	return app.Projects.Resolve(ctx, strings.TrimSpace(ref))
}

// resolveVersion maps a version name or id to an id. Empty and "none" clear
// the version.
func resolveVersion(ctx context.Context, app *App, projectID, ref string) (*string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.EqualFold(ref, domain.NoneVersion) {
		return nil, nil
	}
	v, err := app.Versions.Resolve(ctx, projectID, ref)
	if err != nil {
		return nil, err
	}
	return &v.ID, nil
}

func versionNamer(ctx context.Context, app *App, projectID string) (formatter.VersionNamer, error) {
	versions, err := app.Versions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	names := make(formatter.VersionNamer, len(versions))
	for _, v := range versions {
		names[v.ID] = v.Name
	}
	return names, nil
}

func parseOptionalDate(flag, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q (expected YYYY-MM-DD): %w", flag, s, err)
	}
	return &t, nil
}
