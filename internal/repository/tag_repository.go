package repository

import (
	"context"

	"github.com/Mochytk/INF225-Informagicos/internal/model"
	"gorm.io/gorm"
)

type TagRepository struct {
	DB *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

func (r *TagRepository) FindAll(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.WithContext(ctx).Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *TagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Tag{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.DB.WithContext(ctx).Create(tag).Error
}
