package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/hierarchy"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
)

const dateLayout = "2006-01-02"

// ValidatePlan checks the plan for errors before conversion.
// Returns a slice of all validation errors found.
func ValidatePlan(plan *PlanFile) []error {
	var errs []error

	errs = append(errs, validateProject(&plan.Project)...)
	errs = append(errs, validateSettings(plan.Settings)...)

	versionRefs := make(map[string]bool)
	errs = append(errs, validateVersions(plan.Versions, versionRefs)...)
	errs = append(errs, validateIssues(plan.Issues, versionRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error
	proj := domain.Project{Identifier: p.Identifier}
	if err := proj.ValidateIdentifier(); err != nil {
		errs = append(errs, fmt.Errorf("project.identifier: %w", err))
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	return errs
}

func validateSettings(settings map[string]string) []error {
	var errs []error
	for _, key := range sortedKeys(settings) {
		if !domain.IsKnownSetting(key) {
			errs = append(errs, fmt.Errorf("settings.%s: unknown setting", key))
			continue
		}
		if key == domain.SettingParentIssueDates {
			switch domain.ParentDatesMode(settings[key]) {
			case domain.ParentDatesDerived, domain.ParentDatesIndependent:
			default:
				errs = append(errs, fmt.Errorf("settings.%s: must be %q or %q", key, domain.ParentDatesDerived, domain.ParentDatesIndependent))
			}
		}
	}
	return errs
}

func validateVersions(versions []VersionImport, refs map[string]bool) []error {
	var errs []error
	names := make(map[string]bool)

	for i, v := range versions {
		prefix := fmt.Sprintf("versions[%d]", i)

		if v.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[v.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, v.Ref))
		} else {
			refs[v.Ref] = true
		}

		if v.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if names[v.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate name %q", prefix, v.Name))
		} else {
			names[v.Name] = true
		}

		errs = append(errs, validateOptionalDate(prefix+".effective_date", v.EffectiveDate)...)
	}
	return errs
}

func validateIssues(issues []IssueImport, versionRefs map[string]bool) []error {
	var errs []error
	rules := hierarchy.NewRules(roles.DefaultRoleMap())
	issueRoles := make(map[string]domain.Role)
	seen := make(map[string]bool)

	for i, is := range issues {
		prefix := fmt.Sprintf("issues[%d]", i)

		if is.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if seen[is.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, is.Ref))
		}

		if strings.TrimSpace(is.Subject) == "" {
			errs = append(errs, fmt.Errorf("%s.subject is required", prefix))
		}

		role, roleErr := domain.ParseRole(is.Role)
		if roleErr != nil {
			errs = append(errs, fmt.Errorf("%s.role: %w", prefix, roleErr))
		}

		if is.ParentRef != nil && *is.ParentRef != "" {
			parentRole, ok := issueRoles[*is.ParentRef]
			switch {
			case !ok && !seen[*is.ParentRef]:
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in issues list)", prefix, *is.ParentRef))
			case ok && roleErr == nil && !rules.ValidParent(role, parentRole):
				errs = append(errs, fmt.Errorf("%s.parent_ref: a %s cannot be placed under a %s", prefix, role, parentRole))
			}
		}

		if is.VersionRef != nil && *is.VersionRef != "" && !versionRefs[*is.VersionRef] {
			errs = append(errs, fmt.Errorf("%s.version_ref: ref %q not found in versions", prefix, *is.VersionRef))
		}

		startErrs := validateOptionalDate(prefix+".start_date", is.StartDate)
		dueErrs := validateOptionalDate(prefix+".due_date", is.DueDate)
		errs = append(errs, startErrs...)
		errs = append(errs, dueErrs...)
		if len(startErrs) == 0 && len(dueErrs) == 0 {
			start, due := parseOptionalDate(is.StartDate), parseOptionalDate(is.DueDate)
			if start != nil && due != nil && due.Before(*start) {
				errs = append(errs, fmt.Errorf("%s.due_date %q must not precede start_date %q", prefix, *is.DueDate, *is.StartDate))
			}
		}

		if is.Ref != "" && !seen[is.Ref] {
			seen[is.Ref] = true
			if roleErr == nil {
				issueRoles[is.Ref] = role
			}
		}
	}
	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
