package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
)

// Plan is a converted plan file: domain objects ready for persistence.
type Plan struct {
	Project  *domain.Project
	Settings map[string]string
	Roles    roles.RoleMap
	Versions []*domain.Version
	Issues   []*domain.Issue
}

// Convert transforms a validated PlanFile into domain objects.
// Call ValidatePlan first; Convert assumes the plan is valid.
//
// Creation timestamps advance by one microsecond per row in file order, so
// the store's creation ordering reproduces the order of the file.
func Convert(plan *PlanFile, now time.Time) (*Plan, error) {
	now = now.UTC().Truncate(time.Microsecond)
	tick := 0
	stamp := func() time.Time {
		tick++
		return now.Add(time.Duration(tick) * time.Microsecond)
	}

	created := stamp()
	project := &domain.Project{
		ID:         uuid.New().String(),
		Identifier: plan.Project.Identifier,
		Name:       strings.TrimSpace(plan.Project.Name),
		CreatedAt:  created,
		UpdatedAt:  created,
	}

	settings := make(map[string]string, len(plan.Settings))
	bindings := make(map[domain.Role]string)
	for key, value := range plan.Settings {
		settings[key] = value
		if !domain.IsTrackerSetting(key) {
			continue
		}
		for _, r := range domain.AllRoles {
			if key == domain.TrackerSettingKey(r) {
				bindings[r] = value
			}
		}
	}
	roleMap := roles.NewRoleMap(bindings)

	versionIDs := make(map[string]string, len(plan.Versions))
	versions := make([]*domain.Version, 0, len(plan.Versions))
	for _, v := range plan.Versions {
		created := stamp()
		version := &domain.Version{
			ID:            uuid.New().String(),
			ProjectID:     project.ID,
			Name:          v.Name,
			EffectiveDate: parseOptionalDate(v.EffectiveDate),
			CreatedAt:     created,
			UpdatedAt:     created,
		}
		versionIDs[v.Ref] = version.ID
		versions = append(versions, version)
	}

	issueIDs := make(map[string]string, len(plan.Issues))
	issues := make([]*domain.Issue, 0, len(plan.Issues))
	for _, is := range plan.Issues {
		role, err := domain.ParseRole(is.Role)
		if err != nil {
			return nil, fmt.Errorf("issue %q: %w", is.Ref, err)
		}

		created := stamp()
		issue := &domain.Issue{
			ID:        uuid.New().String(),
			ProjectID: project.ID,
			Tracker:   roleMap.Tracker(role),
			Subject:   strings.TrimSpace(is.Subject),
			StartDate: parseOptionalDate(is.StartDate),
			DueDate:   parseOptionalDate(is.DueDate),
			CreatedAt: created,
			UpdatedAt: created,
		}
		if is.ParentRef != nil && *is.ParentRef != "" {
			pid, ok := issueIDs[*is.ParentRef]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for issue %q", *is.ParentRef, is.Ref)
			}
			issue.ParentID = &pid
		}
		if is.VersionRef != nil && *is.VersionRef != "" {
			vid, ok := versionIDs[*is.VersionRef]
			if !ok {
				return nil, fmt.Errorf("version_ref %q not found for issue %q", *is.VersionRef, is.Ref)
			}
			issue.VersionID = &vid
		}
		issueIDs[is.Ref] = issue.ID
		issues = append(issues, issue)
	}

	return &Plan{
		Project:  project,
		Settings: settings,
		Roles:    roleMap,
		Versions: versions,
		Issues:   issues,
	}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
