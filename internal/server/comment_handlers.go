package server

import (
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// EditCommentPage handles GET /edit_comment/:id/
func (s *Server) EditCommentPage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetOwnComment(c.UserContext(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		return s.fail(c, err)
	}
	return s.renderEdit(c, comment, newForm().Set(service.TextField, comment.Text))
}

// EditComment handles POST /edit_comment/:id/
func (s *Server) EditComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	text := c.FormValue(service.TextField)
	comment, err := s.commentService.EditComment(c.UserContext(), service.EditCommentInput{
		Principal: middleware.CurrentPrincipal(c),
		CommentID: id,
		Text:      text,
	})
	if err != nil {
		field, msg, ok := fieldError(err)
		if !ok || comment == nil {
			return s.fail(c, err)
		}
		form := newForm().Set(service.TextField, text)
		form.AddError(field, msg)
		return s.renderEdit(c, comment, form)
	}

	return c.Redirect(commentsAnchor(comment.NewsID), fiber.StatusFound)
}

// DeleteCommentPage handles GET /delete_comment/:id/
func (s *Server) DeleteCommentPage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetOwnComment(c.UserContext(), middleware.CurrentPrincipal(c), id)
	if err != nil {
		return s.fail(c, err)
	}
	return s.render(c, fiber.StatusOK, "comment_delete", fiber.Map{
		"comment": comment,
	})
}

// DeleteComment handles POST /delete_comment/:id/
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		Principal: middleware.CurrentPrincipal(c),
		CommentID: id,
	})
	if err != nil {
		return s.fail(c, err)
	}

	return c.Redirect(commentsAnchor(comment.NewsID), fiber.StatusFound)
}

func (s *Server) renderEdit(c *fiber.Ctx, comment *models.Comment, form *Form) error {
	return s.render(c, fiber.StatusOK, "comment_edit", fiber.Map{
		"comment": comment,
		"form":    form,
	})
}
