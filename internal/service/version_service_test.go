package service

import (
	"context"
	"testing"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionService_CreateAndList(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	proj := env.project(t, "shop")

	v1 := env.version(t, proj.ID, " 1.0 ", "2025-10-01")
	assert.NotEmpty(t, v1.ID)
	assert.Equal(t, "1.0", v1.Name)

	err := env.versionSvc.Create(ctx, &domain.Version{ProjectID: proj.ID, Name: " "})
	assert.Error(t, err)
	err = env.versionSvc.Create(ctx, &domain.Version{Name: "orphan"})
	assert.Error(t, err)

	versions, err := env.versionSvc.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, v1.ID, versions[0].ID)
}

func TestVersionService_Resolve(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	shop := env.project(t, "shop")
	blog := env.project(t, "blog")
	v := env.version(t, shop.ID, "1.0", "")
	other := env.version(t, blog.ID, "2.0", "")

	byName, err := env.versionSvc.Resolve(ctx, shop.ID, "1.0")
	require.NoError(t, err)
	assert.Equal(t, v.ID, byName.ID)

	byID, err := env.versionSvc.Resolve(ctx, shop.ID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.0", byID.Name)

	_, err = env.versionSvc.Resolve(ctx, shop.ID, other.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = env.versionSvc.Resolve(ctx, shop.ID, "9.9")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
