package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type issueFixture struct {
	db       *sql.DB
	issues   *SQLIssueRepo
	versions *SQLVersionRepo
	settings *SQLSettingRepo
	project  *domain.Project
}

func setupIssueRepo(t *testing.T) *issueFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	proj := testutil.NewTestProject("Issues")
	require.NoError(t, NewSQLProjectRepo(db).Create(context.Background(), proj))
	return &issueFixture{
		db:       db,
		issues:   NewSQLIssueRepo(db),
		versions: NewSQLVersionRepo(db),
		settings: NewSQLSettingRepo(db),
		project:  proj,
	}
}

func (f *issueFixture) create(t *testing.T, role domain.Role, subject string, opts ...testutil.IssueOption) *domain.Issue {
	t.Helper()
	i := testutil.NewTestIssue(f.project.ID, role, subject, opts...)
	require.NoError(t, f.issues.Create(context.Background(), i))
	return i
}

func TestIssueRepo_CreateAndGetByID(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	v := testutil.NewTestVersion(f.project.ID, "v1")
	require.NoError(t, f.versions.Create(ctx, v))

	epic := f.create(t, domain.RoleEpic, "Checkout")
	feature := f.create(t, domain.RoleFeature, "Payments",
		testutil.WithParent(epic.ID),
		testutil.WithVersion(v.ID),
		testutil.WithDates(testutil.Date("2025-10-01"), testutil.Date("2025-10-15")),
	)

	got, err := f.issues.GetByID(ctx, feature.ID)
	require.NoError(t, err)
	assert.Equal(t, "Feature", got.Tracker)
	assert.Equal(t, "Payments", got.Subject)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, epic.ID, *got.ParentID)
	require.NotNil(t, got.VersionID)
	assert.Equal(t, v.ID, *got.VersionID)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2025-10-01", got.StartDate.Format("2006-01-02"))
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2025-10-15", got.DueDate.Format("2006-01-02"))
	assert.True(t, feature.CreatedAt.Equal(got.CreatedAt))

	root, err := f.issues.GetByID(ctx, epic.ID)
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)
	assert.Nil(t, root.VersionID)
	assert.Nil(t, root.StartDate)
}

func TestIssueRepo_GetByID_NotFound(t *testing.T) {
	f := setupIssueRepo(t)
	_, err := f.issues.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueRepo_ListOrdering_CreationThenID(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	at := testutil.Date("2025-03-01")
	b := f.create(t, domain.RoleEpic, "B", testutil.WithIssueID("b"), testutil.WithCreatedAt(at))
	a := f.create(t, domain.RoleEpic, "A", testutil.WithIssueID("a"), testutil.WithCreatedAt(at))
	early := f.create(t, domain.RoleEpic, "Early", testutil.WithIssueID("z"), testutil.WithCreatedAt(at.AddDate(0, 0, -1)))

	list, err := f.issues.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{early.ID, a.ID, b.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestIssueRepo_ListByProjectAndTrackers(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	epic := f.create(t, domain.RoleEpic, "E")
	feature := f.create(t, domain.RoleFeature, "F", testutil.WithParent(epic.ID))
	f.create(t, domain.RoleTask, "T")

	list, err := f.issues.ListByProjectAndTrackers(ctx, f.project.ID, []string{"Epic", "Feature"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, epic.ID, list[0].ID)
	assert.Equal(t, feature.ID, list[1].ID)

	none, err := f.issues.ListByProjectAndTrackers(ctx, f.project.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIssueRepo_ChildrenAndDescendants(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	epic := f.create(t, domain.RoleEpic, "E")
	feature := f.create(t, domain.RoleFeature, "F", testutil.WithParent(epic.ID))
	story1 := f.create(t, domain.RoleUserStory, "S1", testutil.WithParent(feature.ID))
	story2 := f.create(t, domain.RoleUserStory, "S2", testutil.WithParent(feature.ID))
	task := f.create(t, domain.RoleTask, "T", testutil.WithParent(story1.ID))
	f.create(t, domain.RoleEpic, "Unrelated")

	children, err := f.issues.ListChildren(ctx, feature.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, story1.ID, children[0].ID)
	assert.Equal(t, story2.ID, children[1].ID)

	descendants, err := f.issues.ListDescendants(ctx, epic.ID)
	require.NoError(t, err)
	ids := make([]string, 0, len(descendants))
	for _, d := range descendants {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{feature.ID, story1.ID, story2.ID, task.ID}, ids)

	leaf, err := f.issues.ListDescendants(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, leaf)
}

func TestIssueRepo_ListDescendants_TerminatesOnCycle(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	a := f.create(t, domain.RoleFeature, "A")
	b := f.create(t, domain.RoleUserStory, "B", testutil.WithParent(a.ID))
	require.NoError(t, f.issues.UpdateParent(ctx, a.ID, &b.ID))

	descendants, err := f.issues.ListDescendants(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, descendants, 1)
	assert.Equal(t, b.ID, descendants[0].ID)
}

func TestIssueRepo_UpdateParent(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	epic := f.create(t, domain.RoleEpic, "E")
	feature := f.create(t, domain.RoleFeature, "F")

	require.NoError(t, f.issues.UpdateParent(ctx, feature.ID, &epic.ID))
	got, err := f.issues.GetByID(ctx, feature.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, epic.ID, *got.ParentID)

	require.NoError(t, f.issues.UpdateParent(ctx, feature.ID, nil))
	got, err = f.issues.GetByID(ctx, feature.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)

	assert.ErrorIs(t, f.issues.UpdateParent(ctx, "missing", nil), ErrNotFound)
}

func TestIssueRepo_WriteVersionAndDates(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	v := testutil.NewTestVersion(f.project.ID, "v1")
	require.NoError(t, f.versions.Create(ctx, v))
	story := f.create(t, domain.RoleUserStory, "S")

	story.VersionID = &v.ID
	start, due := testutil.Date("2025-10-01"), testutil.Date("2025-10-15")
	story.StartDate, story.DueDate = &start, &due
	require.NoError(t, f.issues.WriteVersionAndDates(ctx, story))

	got, err := f.issues.GetByID(ctx, story.ID)
	require.NoError(t, err)
	require.NotNil(t, got.VersionID)
	assert.Equal(t, v.ID, *got.VersionID)
	assert.Equal(t, "2025-10-01", got.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2025-10-15", got.DueDate.Format("2006-01-02"))
}

func TestIssueRepo_WriteVersionAndDates_RejectsForeignVersion(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	other := testutil.NewTestProject("Other")
	require.NoError(t, NewSQLProjectRepo(f.db).Create(ctx, other))
	foreign := testutil.NewTestVersion(other.ID, "foreign")
	require.NoError(t, f.versions.Create(ctx, foreign))

	story := f.create(t, domain.RoleUserStory, "S")
	story.VersionID = &foreign.ID

	err := f.issues.WriteVersionAndDates(ctx, story)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "version_id", verr.Field)
	assert.Equal(t, story.ID, verr.IssueID)

	got, err := f.issues.GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Nil(t, got.VersionID, "rejected write leaves the row untouched")
}

func TestIssueRepo_WriteVersionAndDates_RejectsInvertedDates(t *testing.T) {
	f := setupIssueRepo(t)
	story := f.create(t, domain.RoleUserStory, "S")

	start, due := testutil.Date("2025-10-15"), testutil.Date("2025-10-01")
	story.StartDate, story.DueDate = &start, &due

	err := f.issues.WriteVersionAndDates(context.Background(), story)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "due_date", verr.Field)
}

func TestIssueRepo_WriteVersion_LeavesDates(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	v := testutil.NewTestVersion(f.project.ID, "v1")
	require.NoError(t, f.versions.Create(ctx, v))
	story := f.create(t, domain.RoleUserStory, "S",
		testutil.WithDates(testutil.Date("2025-01-01"), testutil.Date("2025-01-31")))

	story.VersionID = &v.ID
	story.StartDate, story.DueDate = nil, nil
	require.NoError(t, f.issues.WriteVersion(ctx, story))

	got, err := f.issues.GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, *got.VersionID)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2025-01-01", got.StartDate.Format("2006-01-02"))
}

func TestIssueRepo_WriteVersion_ClearsWithNil(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	v := testutil.NewTestVersion(f.project.ID, "v1")
	require.NoError(t, f.versions.Create(ctx, v))
	story := f.create(t, domain.RoleUserStory, "S", testutil.WithVersion(v.ID))

	story.VersionID = testutil.Ptr("  ")
	require.NoError(t, f.issues.WriteVersion(ctx, story))

	got, err := f.issues.GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Nil(t, got.VersionID, "blank version ids are stored as NULL")
}

func TestIssueRepo_DatesAreChildDerived(t *testing.T) {
	f := setupIssueRepo(t)
	ctx := context.Background()

	feature := f.create(t, domain.RoleFeature, "F")
	leafFeature := f.create(t, domain.RoleFeature, "Leaf")
	f.create(t, domain.RoleUserStory, "S", testutil.WithParent(feature.ID))

	derived, err := f.issues.DatesAreChildDerived(ctx, feature)
	require.NoError(t, err)
	assert.True(t, derived, "default mode is derived")

	derived, err = f.issues.DatesAreChildDerived(ctx, leafFeature)
	require.NoError(t, err)
	assert.False(t, derived, "an issue without children owns its dates")

	require.NoError(t, f.settings.SetGlobal(ctx, domain.SettingParentIssueDates, "independent"))
	derived, err = f.issues.DatesAreChildDerived(ctx, feature)
	require.NoError(t, err)
	assert.False(t, derived, "global setting applies")

	require.NoError(t, f.settings.SetProject(ctx, f.project.ID, domain.SettingParentIssueDates, "derived"))
	derived, err = f.issues.DatesAreChildDerived(ctx, feature)
	require.NoError(t, err)
	assert.True(t, derived, "project setting wins over global")

	require.NoError(t, f.settings.SetProject(ctx, f.project.ID, domain.SettingParentIssueDates, "  "))
	derived, err = f.issues.DatesAreChildDerived(ctx, feature)
	require.NoError(t, err)
	assert.False(t, derived, "a blank project value falls through to global")
}
