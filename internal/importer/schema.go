package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlanFile is the top-level structure of a plan import file. YAML and JSON
// are both accepted.
type PlanFile struct {
	Project  ProjectImport     `yaml:"project" json:"project"`
	Settings map[string]string `yaml:"settings,omitempty" json:"settings,omitempty"`
	Versions []VersionImport   `yaml:"versions" json:"versions"`
	Issues   []IssueImport     `yaml:"issues" json:"issues"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Identifier string `yaml:"identifier" json:"identifier"`
	Name       string `yaml:"name" json:"name"`
}

// VersionImport defines a release. Versions are created in file order,
// which becomes their store order.
type VersionImport struct {
	Ref           string  `yaml:"ref" json:"ref"`
	Name          string  `yaml:"name" json:"name"`
	EffectiveDate *string `yaml:"effective_date,omitempty" json:"effective_date,omitempty"`
}

// IssueImport defines an issue. Parents must appear before their children.
type IssueImport struct {
	Ref        string  `yaml:"ref" json:"ref"`
	ParentRef  *string `yaml:"parent_ref,omitempty" json:"parent_ref,omitempty"`
	Role       string  `yaml:"role" json:"role"`
	Subject    string  `yaml:"subject" json:"subject"`
	VersionRef *string `yaml:"version_ref,omitempty" json:"version_ref,omitempty"`
	StartDate  *string `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	DueDate    *string `yaml:"due_date,omitempty" json:"due_date,omitempty"`
}

// LoadPlanFile reads and parses a plan file.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlan(data)
}

// ParsePlan parses plan file contents. JSON input is valid YAML.
func ParsePlan(data []byte) (*PlanFile, error) {
	var plan PlanFile
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &plan, nil
}
