package server

import (
	"newsdesk/internal/middleware"
	"newsdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /
func (s *Server) Home(c *fiber.Ctx) error {
	news, err := s.newsService.ListNews(c.UserContext())
	if err != nil {
		return s.fail(c, err)
	}
	return s.render(c, fiber.StatusOK, "home", fiber.Map{
		"object_list": news,
	})
}

// NewsDetail handles GET /news/:id/
func (s *Server) NewsDetail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form *Form
	if middleware.CurrentPrincipal(c) != nil {
		form = newForm().Set(service.TextField, "")
	}
	return s.renderDetail(c, id, form)
}

// CreateComment handles POST /news/:id/
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	text := c.FormValue(service.TextField)
	_, err = s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		Principal: middleware.CurrentPrincipal(c),
		NewsID:    id,
		Text:      text,
	})
	if err != nil {
		field, msg, ok := fieldError(err)
		if !ok {
			return s.fail(c, err)
		}
		form := newForm().Set(service.TextField, text)
		form.AddError(field, msg)
		return s.renderDetail(c, id, form)
	}

	return c.Redirect(commentsAnchor(id), fiber.StatusFound)
}

// renderDetail writes the news page with its comments. A nil form hides
// the comment form.
func (s *Server) renderDetail(c *fiber.Ctx, newsID uint, form *Form) error {
	ctx := c.UserContext()

	news, err := s.newsService.GetNews(ctx, newsID)
	if err != nil {
		return s.fail(c, err)
	}
	comments, err := s.commentService.ListComments(ctx, newsID)
	if err != nil {
		return s.fail(c, err)
	}

	data := fiber.Map{
		"news":     news,
		"comments": comments,
	}
	if form != nil {
		data["form"] = form
	}
	return s.render(c, fiber.StatusOK, "detail", data)
}
