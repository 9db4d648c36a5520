package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsdesk/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "sessionid"

const (
	localPrincipal = "principal"
	localUserID    = "userID"
	tokenIssuer    = "newsdesk"
)

// ErrInvalidSession is returned when a session token cannot be trusted.
var ErrInvalidSession = errors.New("invalid session")

// Sessions issues and verifies cookie sessions backed by HS256 JWTs.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewSessions creates a session manager. secure marks cookies Secure.
func NewSessions(secret string, ttl time.Duration, secure bool) *Sessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Issue returns a signed token for user.
func (s *Sessions) Issue(user *models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"iss":      tokenIssuer,
		"exp":      now.Add(s.ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies a token and returns the principal it names.
func (s *Sessions) Parse(tokenString string) (*models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidSession
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return nil, ErrInvalidSession
	}
	username, _ := claims["username"].(string)

	return &models.Principal{UserID: uint(userID), Username: username}, nil
}

// Login sets the session cookie for user.
func (s *Sessions) Login(c *fiber.Ctx, user *models.User) error {
	token, err := s.Issue(user)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Logout expires the session cookie and drops the request principal.
func (s *Sessions) Logout(c *fiber.Ctx) {
	c.Locals(localPrincipal, nil)
	c.Locals(localUserID, nil)
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Load resolves the session cookie, if any, into the request principal.
// Requests with a missing or invalid cookie continue anonymously.
func (s *Sessions) Load() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(SessionCookie)
		if raw == "" {
			return c.Next()
		}

		principal, err := s.Parse(raw)
		if err != nil {
			Logger.DebugContext(c.UserContext(), "ignoring invalid session cookie")
			s.Logout(c)
			return c.Next()
		}

		c.Locals(localPrincipal, principal)
		c.Locals(localUserID, principal.UserID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, principal.UserID))
		return c.Next()
	}
}

// CurrentPrincipal returns the authenticated caller, or nil when anonymous.
func CurrentPrincipal(c *fiber.Ctx) *models.Principal {
	p, _ := c.Locals(localPrincipal).(*models.Principal)
	return p
}

// LoginRequired redirects anonymous callers to loginPath with a next
// parameter pointing back at the original URL.
func LoginRequired(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentPrincipal(c) != nil {
			return c.Next()
		}
		return c.Redirect(LoginRedirectURL(loginPath, c.OriginalURL()), fiber.StatusFound)
	}
}

// LoginRedirectURL builds "<loginPath>?next=<next>", leaving slashes in next unescaped.
func LoginRedirectURL(loginPath, next string) string {
	return loginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext returns next if it is a local path, otherwise fallback.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
