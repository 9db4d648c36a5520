// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"newsdesk/internal/models"

	"gorm.io/gorm"
)

// NewsRepository defines persistence operations for news items.
type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	CreateBatch(ctx context.Context, news []*models.News) error
	GetByID(ctx context.Context, id uint) (*models.News, error)
	// List returns up to limit items, newest first.
	List(ctx context.Context, limit int) ([]*models.News, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *models.News) error {
	if err := r.db.WithContext(ctx).Create(news).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *newsRepository) CreateBatch(ctx context.Context, news []*models.News) error {
	if len(news) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(news, 100).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (*models.News, error) {
	var news models.News
	if err := r.db.WithContext(ctx).First(&news, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("News", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &news, nil
}

func (r *newsRepository) List(ctx context.Context, limit int) ([]*models.News, error) {
	var news []*models.News
	err := r.db.WithContext(ctx).
		Order("date desc, id desc").
		Limit(limit).
		Find(&news).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return news, nil
}

func (r *newsRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.News{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
