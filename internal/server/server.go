// Package server contains the HTTP handlers and page rendering for the news site.
package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"newsdesk/internal/cache"
	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/middleware"
	"newsdesk/internal/moderation"
	"newsdesk/internal/repository"
	"newsdesk/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

//go:embed views/*.html
var viewsFS embed.FS

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *middleware.Sessions
	newsRepo       repository.NewsRepository
	commentRepo    repository.CommentRepository
	userRepo       repository.UserRepository
	newsService    *service.NewsService
	commentService *service.CommentService
	userService    *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	filter := moderation.Default()
	if cfg.BadWordsFile != "" {
		filter, err = moderation.LoadFile(cfg.BadWordsFile)
		if err != nil {
			return nil, fmt.Errorf("load bad words: %w", err)
		}
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), filter)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// A nil filter uses the default word list.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, filter *moderation.Filter) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("config and database are required")
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("newsdesk"),
		sessions: middleware.NewSessions(cfg.SessionSecret,
			time.Duration(cfg.SessionTTLHours)*time.Hour, cfg.IsProduction()),
		newsRepo:    repository.NewNewsRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		userRepo:    repository.NewUserRepository(db),
	}
	server.newsService = service.NewNewsService(server.newsRepo, cfg.NewsCountOnHomePage)
	server.commentService = service.NewCommentService(server.commentRepo, server.newsRepo, filter)
	server.userService = service.NewUserService(server.userRepo, 0)

	return server, nil
}

// NewApp builds the Fiber app with the embedded page templates.
func (s *Server) NewApp() (*fiber.App, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(templateFuncs())

	return fiber.New(fiber.Config{
		AppName:      "newsdesk",
		Views:        engine,
		ViewsLayout:  "layout",
		ErrorHandler: s.errorHandler,
	}), nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return !s.config.IsProduction()
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests, please try again later.")
		},
	}))

	app.Use(s.sessions.Load())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	loginRequired := middleware.LoginRequired(URLFor(RouteLogin))
	commentLimit := s.rateLimit(s.config.CommentRateLimit, time.Minute, "comment")

	app.Get(routePath(RouteHome), s.Home)
	app.Get(routePath(RouteDetail), s.NewsDetail)
	app.Post(routePath(RouteDetail), loginRequired, commentLimit, s.CreateComment)

	app.Get(routePath(RouteEdit), loginRequired, s.EditCommentPage)
	app.Post(routePath(RouteEdit), loginRequired, commentLimit, s.EditComment)
	app.Get(routePath(RouteDelete), loginRequired, s.DeleteCommentPage)
	app.Post(routePath(RouteDelete), loginRequired, commentLimit, s.DeleteComment)

	app.Get(routePath(RouteLogin), s.LoginPage)
	app.Post(routePath(RouteLogin), s.rateLimit(10, 5*time.Minute, "login"), s.Login)
	app.Get(routePath(RouteLogout), s.Logout)
	app.Post(routePath(RouteLogout), s.Logout)
	app.Get(routePath(RouteSignup), s.SignupPage)
	app.Post(routePath(RouteSignup), s.rateLimit(3, 10*time.Minute, "signup"), s.Signup)

	app.Use(func(c *fiber.Ctx) error {
		return s.renderNotFound(c)
	})
}

// rateLimit returns the Redis-backed limiter for name, or a pass-through
// handler when the profile has rate limiting off.
func (s *Server) rateLimit(limit int, window time.Duration, name string) fiber.Handler {
	if !s.config.RateLimitEnabled() {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return middleware.RateLimit(s.redis, limit, window, name)
}

// Shutdown releases resources held by the server.
func (s *Server) Shutdown(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Warn("redis close failed", "error", err)
		}
	}
	return sqlDB.Close()
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis only backs the
// rate limiter, so a missing client is reported but does not fail the probe.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
