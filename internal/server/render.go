package server

import (
	"errors"
	"html/template"
	"time"

	"newsdesk/internal/middleware"
	"newsdesk/internal/models"

	"github.com/gofiber/fiber/v2"
)

const mimeJSON = "application/json"

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"url": URLFor,
		"date": func(t time.Time) string {
			return t.Format("02.01.2006 15:04")
		},
		"day": func(t time.Time) string {
			return t.Format("02.01.2006")
		},
	}
}

// wantsJSON reports whether the client prefers the view context as JSON
// over the rendered page.
func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, mimeJSON) == mimeJSON
}

// render writes the named page, or its view context as JSON when the
// client asks for it. The current user is exposed as "user".
func (s *Server) render(c *fiber.Ctx, status int, page string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if p := middleware.CurrentPrincipal(c); p != nil {
		data["user"] = p
	}
	if wantsJSON(c) {
		return c.Status(status).JSON(data)
	}
	return c.Status(status).Render(page, data)
}

func (s *Server) renderNotFound(c *fiber.Ctx) error {
	if wantsJSON(c) {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "Not found",
			Code:  models.CodeNotFound,
		})
	}
	return s.render(c, fiber.StatusNotFound, "404", nil)
}

// fail writes the response for a service error.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}

	status := statusFor(appErr.Code)
	switch status {
	case fiber.StatusNotFound:
		return s.renderNotFound(c)
	case fiber.StatusUnauthorized:
		return c.Redirect(middleware.LoginRedirectURL(URLFor(RouteLogin), c.OriginalURL()), fiber.StatusFound)
	case fiber.StatusInternalServerError:
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"path", c.Path(), "error", err)
		if wantsJSON(c) {
			return c.Status(status).JSON(models.ErrorResponse{Error: appErr.Message, Code: appErr.Code})
		}
		return s.render(c, status, "500", nil)
	}

	if wantsJSON(c) {
		return c.Status(status).JSON(models.ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
			Field: appErr.Field,
		})
	}
	return c.Status(status).SendString(appErr.Message)
}

// errorHandler handles errors that escape the handlers, including routing
// errors raised by Fiber itself.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusNotFound {
			return s.renderNotFound(c)
		}
		return c.Status(fe.Code).SendString(fe.Message)
	}
	return s.fail(c, err)
}
