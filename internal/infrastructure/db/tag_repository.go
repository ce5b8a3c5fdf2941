package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) repositories.TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	tagModel := TagModel{Name: tag.Name}
	if err := r.db.WithContext(ctx).Create(&tagModel).Error; err != nil {
		return nil, err
	}
	return &entities.Tag{Id: tagModel.ID, Name: tagModel.Name}, nil
}

func (r *TagRepository) FindById(ctx context.Context, id uint) (*entities.Tag, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*entities.Tag, error) {
	return r.findOne(ctx, "name = ?", name)
}

// SearchNames returns tag names starting with prefix, case-insensitively,
// in alphabetical order.
func (r *TagRepository) SearchNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	names := make([]string, 0, limit)
	pattern := escapeLike(foldTagName(prefix)) + "%"

	err := r.db.WithContext(ctx).
		Model(&TagModel{}).
		Where(`name_folded LIKE ? ESCAPE '\'`, pattern).
		Order("name").
		Limit(limit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *TagRepository) findOne(ctx context.Context, query string, arg any) (*entities.Tag, error) {
	var tagModel TagModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&tagModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.Tag{Id: tagModel.ID, Name: tagModel.Name}, nil
}
