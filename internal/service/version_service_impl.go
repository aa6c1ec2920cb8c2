package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/repository"
	"github.com/google/uuid"
)

type versionService struct {
	versions repository.VersionRepo
}

func NewVersionService(versions repository.VersionRepo) VersionService {
	return &versionService{versions: versions}
}

func (s *versionService) Create(ctx context.Context, v *domain.Version) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return fmt.Errorf("version name is required")
	}
	if v.ProjectID == "" {
		return fmt.Errorf("version %q: project is required", v.Name)
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	return s.versions.Create(ctx, v)
}

func (s *versionService) GetByID(ctx context.Context, id string) (*domain.Version, error) {
	return s.versions.GetByID(ctx, id)
}

func (s *versionService) Resolve(ctx context.Context, projectID, ref string) (*domain.Version, error) {
	v, err := s.versions.GetByName(ctx, projectID, ref)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	v, err = s.versions.GetByID(ctx, ref)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("version %q: %w", ref, repository.ErrNotFound)
	case err != nil:
		return nil, err
	case v.ProjectID != projectID:
		return nil, fmt.Errorf("version %q belongs to another project: %w", ref, repository.ErrNotFound)
	}
	return v, nil
}

func (s *versionService) ListByProject(ctx context.Context, projectID string) ([]*domain.Version, error) {
	return s.versions.ListByProject(ctx, projectID)
}
