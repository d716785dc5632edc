package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// SessionCookie names the cookie carrying the dashboard session id.
const SessionCookie = "invdash_session"

// sessionKey is the context key the session id is stored under.
const sessionKey = "session_id"

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers",
		"Content-Type, HX-Request, HX-Trigger, HX-Target, HX-Current-URL")

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware assigns every browser a session id. A missing or
// malformed cookie gets a fresh id.
func SessionMiddleware(c rweb.Context) error {
	cookieValue, err := c.GetCookie(SessionCookie)
	if err != nil || !validSessionID(cookieValue) {
		cookieValue = uuid.NewString()
		if err := c.SetCookie(SessionCookie, cookieValue); err != nil {
			logger.LogErr(err, "failed to set session cookie")
		}
	}

	c.Set(sessionKey, cookieValue)
	return c.Next()
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// htmx is loaded from unpkg; everything else is served locally
	csp := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline' https://unpkg.com",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"htmx", c.Request().Header("HX-Request"),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
