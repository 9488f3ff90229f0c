package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"demeter/internal/cache"
	"demeter/internal/db"
	"demeter/internal/handlers"
	"demeter/internal/inventory"
	applog "demeter/internal/log"
	"demeter/internal/recipes"
	"demeter/internal/store"
	"demeter/internal/substitution"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr               string
	CORSAllowedOrigins []string
	Session            SessionConfig
	Database           *gorm.DB
	Cache              cache.IDSetCache
	Matching           MatchingConfig
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// MatchingConfig selects how makeable recipes are computed.
type MatchingConfig struct {
	Strategy    string
	Concurrency int
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
	)

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		sessionCfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		sessionCfg.CookieName = "demeter_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", sessionCfg.CookieName,
		"cookieDomain", sessionCfg.CookieDomain,
		"cookieSecure", sessionCfg.CookieSecure,
	)

	handlers.Configure(sessionManager, dependencies(cfg))

	applog.Debug(context.Background(), "handler dependencies configured", "hasDatabase", cfg.Database != nil)

	handler := withRequestID(withCORS(cfg.CORSAllowedOrigins, sessionManager.LoadAndSave(newRouter())))

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// dependencies builds the services behind the API. Without a database only
// the health and session routes are usable.
func dependencies(cfg Config) handlers.Dependencies {
	if cfg.Database == nil {
		return handlers.Dependencies{}
	}
	st := store.New(cfg.Database)
	finder := substitution.NewFinder(st)
	checks := map[string]handlers.HealthCheck{"database": db.Ping(cfg.Database)}
	if cfg.Cache != nil {
		checks["cache"] = cfg.Cache.Ping
	}
	return handlers.Dependencies{
		Store:     st,
		Inventory: inventory.NewService(st),
		Recipes: recipes.NewService(st, finder, recipes.Options{
			Strategy:    recipes.Strategy(cfg.Matching.Strategy),
			Concurrency: cfg.Matching.Concurrency,
			Cache:       cfg.Cache,
		}),
		Substitutes: finder,
		Checks:      checks,
	}
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
