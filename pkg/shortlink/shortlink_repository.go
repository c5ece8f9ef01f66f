package shortlink

import (
	"Foodgram-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ShortLinkRepository interface {
		Create(ctx context.Context, link *entities.ShortLink) error
		GetByKey(ctx context.Context, key string) (*entities.ShortLink, error)
		GetByRecipeID(ctx context.Context, recipeID string) (*entities.ShortLink, error)
	}

	shortLinkRepository struct {
		db *gorm.DB
	}
)

func NewShortLinkRepository(db *gorm.DB) ShortLinkRepository {
	return &shortLinkRepository{db: db}
}

func (r *shortLinkRepository) Create(ctx context.Context, link *entities.ShortLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *shortLinkRepository) GetByKey(ctx context.Context, key string) (*entities.ShortLink, error) {
	var link entities.ShortLink
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *shortLinkRepository) GetByRecipeID(ctx context.Context, recipeID string) (*entities.ShortLink, error) {
	var link entities.ShortLink
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}
