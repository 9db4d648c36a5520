package service

import (
	"context"
	"errors"

	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/moderation"
	"newsdesk/internal/observability"
	"newsdesk/internal/repository"
	"newsdesk/internal/validation"
)

// TextField is the form field comment text errors are reported against.
const TextField = "text"

type CommentService struct {
	commentRepo repository.CommentRepository
	newsRepo    repository.NewsRepository
	filter      *moderation.Filter
}

type CreateCommentInput struct {
	Principal *models.Principal
	NewsID    uint
	Text      string
}

type EditCommentInput struct {
	Principal *models.Principal
	CommentID uint
	Text      string
}

type DeleteCommentInput struct {
	Principal *models.Principal
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	newsRepo repository.NewsRepository,
	filter *moderation.Filter,
) *CommentService {
	if filter == nil {
		filter = moderation.Default()
	}
	return &CommentService{
		commentRepo: commentRepo,
		newsRepo:    newsRepo,
		filter:      filter,
	}
}

// ListComments returns the comments of a news item, oldest first.
func (s *CommentService) ListComments(ctx context.Context, newsID uint) ([]*models.Comment, error) {
	if _, err := s.newsRepo.GetByID(ctx, newsID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByNews(ctx, newsID)
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (comment *models.Comment, err error) {
	defer func() { observability.ObserveCommentOperation("create", err) }()

	if in.Principal == nil {
		return nil, models.NewUnauthenticatedError("Login required to comment")
	}
	if _, err := s.newsRepo.GetByID(ctx, in.NewsID); err != nil {
		return nil, err
	}
	if err := s.checkText(ctx, in.Text); err != nil {
		return nil, err
	}

	comment = &models.Comment{
		NewsID:   in.NewsID,
		AuthorID: in.Principal.UserID,
		Text:     in.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "comment created",
		"comment_id", comment.ID, "news_id", comment.NewsID)
	return comment, nil
}

// GetOwnComment loads a comment for its author. A missing comment and a
// comment owned by someone else both yield NotFound.
func (s *CommentService) GetOwnComment(ctx context.Context, principal *models.Principal, commentID uint) (*models.Comment, error) {
	if principal == nil {
		return nil, models.NewUnauthenticatedError("Login required")
	}
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != principal.UserID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	return comment, nil
}

// EditComment replaces the text of the caller's own comment.
func (s *CommentService) EditComment(ctx context.Context, in EditCommentInput) (comment *models.Comment, err error) {
	defer func() { observability.ObserveCommentOperation("edit", err) }()

	comment, err = s.GetOwnComment(ctx, in.Principal, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkText(ctx, in.Text); err != nil {
		return comment, err
	}
	if err := s.commentRepo.UpdateText(ctx, comment.ID, in.Text); err != nil {
		return nil, err
	}

	comment.Text = in.Text
	return comment, nil
}

// DeleteComment removes the caller's own comment and returns it.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (comment *models.Comment, err error) {
	defer func() { observability.ObserveCommentOperation("delete", err) }()

	comment, err = s.GetOwnComment(ctx, in.Principal, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) checkText(ctx context.Context, text string) error {
	if err := validation.ValidateCommentText(text); err != nil {
		return models.NewFieldError(TextField, err.Error())
	}
	if err := s.filter.Check(text); err != nil {
		if errors.Is(err, moderation.ErrBadWords) {
			observability.ModerationRejections.Inc()
			middleware.Logger.InfoContext(ctx, "comment rejected by word filter")
			return models.NewFieldError(TextField, moderation.Warning)
		}
		return models.NewInternalError(err)
	}
	return nil
}
