package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

func sortedFieldKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// versionLabel renders an optional version id for use-case fields.
func versionLabel(id *string) string {
	if v := domain.NormalizeVersionID(id); v != "" {
		return v
	}
	return domain.NoneVersion
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
