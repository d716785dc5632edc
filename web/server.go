package web

import (
	"context"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"

	"invdash/dashboard"
	"invdash/models"
	"invdash/web/pages"
)

// NewServer creates and configures the dashboard server on cfg.ListenAddr.
func NewServer(cfg *models.Config, api dashboard.API) *rweb.Server {
	return NewServerWithOptions(rweb.ServerOptions{
		Address: cfg.ListenAddr,
		Verbose: cfg.Verbose,
	}, cfg, api)
}

// NewServerWithOptions is NewServer with explicit server options, used by
// tests to listen on a dynamic port.
func NewServerWithOptions(opts rweb.ServerOptions, cfg *models.Config, api dashboard.API) *rweb.Server {
	s := rweb.NewServer(opts)

	// Apply middleware
	s.Use(rweb.RequestInfo)          // Logs request info
	s.Use(CorsMiddleware)            // Custom CORS middleware
	s.Use(SessionMiddleware)         // Session cookie
	s.Use(SecurityHeadersMiddleware) // Security headers
	s.Use(LoggingMiddleware)         // Request logging

	sessions := NewSessionStore(api, cfg.SessionTTL, cfg.RequestTimeout)
	go sessions.RunSweeper(context.Background(), sweepInterval(cfg.SessionTTL))

	h := &dashboardHandlers{
		sessions: sessions,
		page:     pages.NewPage(cfg.SearchDebounce),
		cfg:      cfg,
	}
	setupRoutes(s, h)

	// Serve static files using embedded FS
	SetupStaticFiles(s)

	return s
}

// sweepInterval checks for idle sessions a few times per ttl.
func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	switch {
	case interval < 15*time.Second:
		return 15 * time.Second
	case interval > 10*time.Minute:
		return 10 * time.Minute
	}
	return interval
}

// Run starts the server
func Run(s *rweb.Server, cfg *models.Config) error {
	logger.Info("Inventory dashboard starting", "address", cfg.ListenAddr, "api", cfg.APIBaseURL)
	return s.Run()
}
