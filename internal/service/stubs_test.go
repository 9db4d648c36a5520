package service

import (
	"context"
	"errors"
	"testing"

	"newsdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByNewsFn func(context.Context, uint) ([]*models.Comment, error)
	updateTextFn func(context.Context, uint, string) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByNews(ctx context.Context, newsID uint) ([]*models.Comment, error) {
	return s.listByNewsFn(ctx, newsID)
}
func (s *commentRepoStub) UpdateText(ctx context.Context, id uint, text string) error {
	return s.updateTextFn(ctx, id, text)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByNewsFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateTextFn: func(_ context.Context, _ uint, _ string) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// newsRepoStub is a stub for repository.NewsRepository.
type newsRepoStub struct {
	createFn        func(context.Context, *models.News) error
	createBatchFn   func(context.Context, []*models.News) error
	getByIDFn       func(context.Context, uint) (*models.News, error)
	listFn          func(context.Context, int) ([]*models.News, error)
	existsByTitleFn func(context.Context, string) (bool, error)
}

func (s *newsRepoStub) Create(ctx context.Context, news *models.News) error {
	return s.createFn(ctx, news)
}
func (s *newsRepoStub) CreateBatch(ctx context.Context, news []*models.News) error {
	return s.createBatchFn(ctx, news)
}
func (s *newsRepoStub) GetByID(ctx context.Context, id uint) (*models.News, error) {
	return s.getByIDFn(ctx, id)
}
func (s *newsRepoStub) List(ctx context.Context, limit int) ([]*models.News, error) {
	return s.listFn(ctx, limit)
}
func (s *newsRepoStub) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	return s.existsByTitleFn(ctx, title)
}

func noopNewsRepo() *newsRepoStub {
	return &newsRepoStub{
		createFn:      func(_ context.Context, _ *models.News) error { return nil },
		createBatchFn: func(_ context.Context, _ []*models.News) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.News, error) {
			return &models.News{ID: id}, nil
		},
		listFn:          func(_ context.Context, _ int) ([]*models.News, error) { return nil, nil },
		existsByTitleFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByUsernameFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
	}
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}
