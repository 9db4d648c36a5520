package server

import (
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LoginPage handles GET /auth/login/
func (s *Server) LoginPage(c *fiber.Ctx) error {
	form := newForm().Set("username", "").Set("next", c.Query("next"))
	return s.render(c, fiber.StatusOK, "login", fiber.Map{"form": form})
}

// Login handles POST /auth/login/
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	next := c.FormValue("next", c.Query("next"))

	user, err := s.userService.Authenticate(c.UserContext(), username, c.FormValue("password"))
	if err != nil {
		if !models.HasCode(err, models.CodeUnauthenticated) {
			return s.fail(c, err)
		}
		form := newForm().Set("username", username).Set("next", next)
		form.AddError(NonFieldErrors, "Пожалуйста, введите правильные имя пользователя и пароль.")
		return s.render(c, fiber.StatusOK, "login", fiber.Map{"form": form})
	}

	if err := s.sessions.Login(c, user); err != nil {
		return s.fail(c, models.NewInternalError(err))
	}
	middleware.Logger.InfoContext(c.UserContext(), "user logged in", "user_id", user.ID)

	return c.Redirect(middleware.SafeNext(next, URLFor(RouteHome)), fiber.StatusFound)
}

// Logout handles GET and POST /auth/logout/
func (s *Server) Logout(c *fiber.Ctx) error {
	s.sessions.Logout(c)
	return s.render(c, fiber.StatusOK, "logout", nil)
}

// SignupPage handles GET /auth/signup/
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "signup", fiber.Map{
		"form": newForm().Set("username", ""),
	})
}

// Signup handles POST /auth/signup/
func (s *Server) Signup(c *fiber.Ctx) error {
	in := service.SignupInput{
		Username:        c.FormValue("username"),
		Password:        c.FormValue("password"),
		PasswordConfirm: c.FormValue("password_confirm"),
	}

	user, err := s.userService.Signup(c.UserContext(), in)
	if err != nil {
		field, msg, ok := fieldError(err)
		if !ok {
			return s.fail(c, err)
		}
		form := newForm().Set("username", in.Username)
		form.AddError(field, msg)
		return s.render(c, fiber.StatusOK, "signup", fiber.Map{"form": form})
	}

	middleware.Logger.InfoContext(c.UserContext(), "user signed up", "user_id", user.ID)
	return c.Redirect(URLFor(RouteLogin), fiber.StatusFound)
}
