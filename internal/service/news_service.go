// Package service holds the application use cases. Services take their
// collaborators as interfaces and receive the caller identity explicitly.
package service

import (
	"context"

	"newsdesk/internal/models"
	"newsdesk/internal/repository"
)

// DefaultNewsPageSize is used when no page size is configured.
const DefaultNewsPageSize = 10

type NewsService struct {
	newsRepo repository.NewsRepository
	pageSize int
}

func NewNewsService(newsRepo repository.NewsRepository, pageSize int) *NewsService {
	if pageSize <= 0 {
		pageSize = DefaultNewsPageSize
	}
	return &NewsService{newsRepo: newsRepo, pageSize: pageSize}
}

// PageSize reports how many items ListNews returns at most.
func (s *NewsService) PageSize() int {
	return s.pageSize
}

// ListNews returns the home page: the newest items, at most PageSize of them.
func (s *NewsService) ListNews(ctx context.Context) ([]*models.News, error) {
	return s.newsRepo.List(ctx, s.pageSize)
}

func (s *NewsService) GetNews(ctx context.Context, id uint) (*models.News, error) {
	return s.newsRepo.GetByID(ctx, id)
}
