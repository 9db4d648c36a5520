package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testNewsPageSize = 10

type testEnv struct {
	t       *testing.T
	srv     *Server
	app     *fiber.App
	db      *gorm.DB
	factory *seed.Factory
}

// setupNewsTestServer wires a Server over a migrated in-memory sqlite database.
func setupNewsTestServer(t *testing.T) *testEnv {
	t.Helper()
	return setupNewsTestServerWith(t, nil, nil)
}

// setupNewsTestServerWith is setupNewsTestServer with a config override and
// an optional Redis client.
func setupNewsTestServerWith(t *testing.T, mutate func(*config.Config), rdb *redis.Client) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Config{
		Env:                 "test",
		SessionSecret:       "test-secret-with-enough-length-123",
		SessionTTLHours:     1,
		CommentRateLimit:    10,
		NewsCountOnHomePage: testNewsPageSize,
	}
	if mutate != nil {
		mutate(cfg)
	}

	srv, err := NewServerWithDeps(cfg, db, rdb, nil)
	require.NoError(t, err)
	app, err := srv.NewApp()
	require.NoError(t, err)
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	return &testEnv{
		t:       t,
		srv:     srv,
		app:     app,
		db:      db,
		factory: seed.NewFactory(db, seed.Options{BcryptCost: bcrypt.MinCost}),
	}
}

type requestOpts struct {
	as   *models.User
	form url.Values
	json bool
}

func (e *testEnv) do(method, target string, opts requestOpts) *http.Response {
	e.t.Helper()

	var body io.Reader
	if opts.form != nil {
		body = strings.NewReader(opts.form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if opts.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if opts.json {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "text/html")
	}
	if opts.as != nil {
		token, err := e.srv.sessions.Issue(opts.as)
		require.NoError(e.t, err)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	e.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) decode(resp *http.Response, v interface{}) {
	e.t.Helper()
	require.NoError(e.t, json.NewDecoder(resp.Body).Decode(v))
}

func (e *testEnv) mustUser(name string) *models.User {
	e.t.Helper()
	u, err := e.factory.CreateUser(name)
	require.NoError(e.t, err)
	return u
}

func (e *testEnv) mustNews() *models.News {
	e.t.Helper()
	n, err := e.factory.CreateNews("Заголовок", "Текст")
	require.NoError(e.t, err)
	return n
}

func (e *testEnv) mustComment(news *models.News, author *models.User) *models.Comment {
	e.t.Helper()
	c, err := e.factory.CreateComment(news, author, "Текст комментария")
	require.NoError(e.t, err)
	return c
}

func (e *testEnv) commentCount() int64 {
	e.t.Helper()
	var n int64
	require.NoError(e.t, e.db.Model(&models.Comment{}).Count(&n).Error)
	return n
}
