package repository

import (
	"context"
	"testing"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRepo_ProjectOverride(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Settings")
	require.NoError(t, NewSQLProjectRepo(db).Create(ctx, proj))
	repo := NewSQLSettingRepo(db)

	_, ok, err := repo.ProjectOverride(ctx, proj.ID, "tracker_epic")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetProject(ctx, proj.ID, "tracker_epic", "Initiative"))
	require.NoError(t, repo.SetProject(ctx, proj.ID, "tracker_epic", "Theme"))

	value, ok, err := repo.ProjectOverride(ctx, proj.ID, "tracker_epic")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Theme", value, "second write replaces the first")
}

func TestSettingRepo_GlobalOverride(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLSettingRepo(db)

	_, ok, err := repo.GlobalOverride(ctx, "parent_issue_dates")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetGlobal(ctx, "parent_issue_dates", "independent"))
	value, ok, err := repo.GlobalOverride(ctx, "parent_issue_dates")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "independent", value)
}
