package service

import (
	"context"
	"strings"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"github.com/Mochytk/INF225-Informagicos/internal/repository"
	"github.com/Mochytk/INF225-Informagicos/internal/util"
)

type TagService struct {
	Repo *repository.TagRepository
}

func NewTagService(repo *repository.TagRepository) *TagService {
	return &TagService{Repo: repo}
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.Repo.FindAll(ctx)
}

// Create rejects a name that is already used, ignoring surrounding spaces.
func (s *TagService) Create(ctx context.Context, name, description string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	exists, err := s.Repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrTagExists
	}

	tag := &model.Tag{Name: name, Description: description}
	if err := s.Repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}
