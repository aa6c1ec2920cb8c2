package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPlan = `
project:
  identifier: shop
  name: Web Shop
settings:
  tracker_user_story: Story
versions:
  - ref: r1
    name: "1.0"
    effective_date: "2025-10-01"
  - ref: backlog
    name: Backlog
issues:
  - ref: e1
    role: epic
    subject: Checkout
  - ref: f1
    parent_ref: e1
    role: feature
    subject: Payments
  - ref: s1
    parent_ref: f1
    role: user_story
    subject: Card form
    version_ref: r1
`

const jsonPlan = `{
  "project": {"identifier": "shop", "name": "Web Shop"},
  "versions": [{"ref": "r1", "name": "1.0", "effective_date": "2025-10-01"}],
  "issues": [{"ref": "e1", "role": "epic", "subject": "Checkout"}]
}`

func TestParsePlan_YAML(t *testing.T) {
	plan, err := ParsePlan([]byte(yamlPlan))
	require.NoError(t, err)

	assert.Equal(t, "shop", plan.Project.Identifier)
	assert.Equal(t, "Story", plan.Settings["tracker_user_story"])
	require.Len(t, plan.Versions, 2)
	assert.Equal(t, "1.0", plan.Versions[0].Name)
	require.NotNil(t, plan.Versions[0].EffectiveDate)
	assert.Nil(t, plan.Versions[1].EffectiveDate)
	require.Len(t, plan.Issues, 3)
	require.NotNil(t, plan.Issues[2].VersionRef)
	assert.Equal(t, "r1", *plan.Issues[2].VersionRef)
	assert.Empty(t, ValidatePlan(plan))
}

func TestParsePlan_JSON(t *testing.T) {
	plan, err := ParsePlan([]byte(jsonPlan))
	require.NoError(t, err)
	assert.Equal(t, "Web Shop", plan.Project.Name)
	require.Len(t, plan.Issues, 1)
	assert.Equal(t, "epic", plan.Issues[0].Role)
}

func TestParsePlan_Malformed(t *testing.T) {
	_, err := ParsePlan([]byte("project: [unterminated"))
	assert.ErrorContains(t, err, "parsing plan file")
}

func TestLoadPlanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlPlan), 0o644))

	plan, err := LoadPlanFile(path)
	require.NoError(t, err)
	assert.Equal(t, "shop", plan.Project.Identifier)

	_, err = LoadPlanFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
