package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamepanel/internal/actions"
	"gamepanel/internal/cache"
	"gamepanel/internal/constants"
	"gamepanel/internal/db"
	"gamepanel/internal/gateway"
	"gamepanel/internal/interfaces"
	"gamepanel/internal/logger"
	"gamepanel/internal/session"
	syncer "gamepanel/internal/sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the server configuration
type Config struct {
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`

	// CORS settings
	AllowOrigins []string `toml:"allow_origins"`
	AllowHeaders []string `toml:"allow_headers"`

	// Logging
	LogLevel string `toml:"log_level"`

	// DetailCacheTTL bounds how stale a cached live detail view may be
	DetailCacheTTL time.Duration `toml:"detail_cache_ttl"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            constants.DefaultServerPort,
		ReadTimeout:     constants.DefaultServerReadTimeout,
		WriteTimeout:    constants.DefaultServerWriteTimeout,
		ShutdownTimeout: constants.DefaultServerShutdownTimeout,
		AllowOrigins:    []string{"*"},
		AllowHeaders:    []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		LogLevel:        "info",
		DetailCacheTTL:  constants.DefaultDetailCacheTTL,
	}
}

// ActionCoordinator dispatches lifecycle actions and exposes their
// in-flight state
type ActionCoordinator interface {
	Submit(ctx context.Context, sess *session.Session, serviceID string, action actions.Action, opts actions.Options) error
	Pending(serviceID string) (actions.Action, bool)
}

// Reconciler converges the cached mirror onto the provider's list
type Reconciler interface {
	SyncUser(ctx context.Context, sess *session.Session) (*syncer.Result, error)
	RecordStatus(ctx context.Context, sess *session.Session, serviceID, status string)
}

// Server represents the dashboard HTTP server
type Server struct {
	config      *Config
	echo        *echo.Echo
	gateway     interfaces.ServiceGateway
	cache       interfaces.ServiceCache
	reconciler  Reconciler
	coordinator ActionCoordinator
	sessions    session.Provider
	db          *db.DB
	detailCache *cache.Cache[string, *gateway.ServiceDetail]
	startTime   time.Time
}

// New creates a new server instance with minimal configuration
func New(cfg *Config) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.LogLevel != "" {
		logger.SetLevel(cfg.LogLevel)
	}
	if cfg.DetailCacheTTL <= 0 {
		cfg.DetailCacheTTL = constants.DefaultDetailCacheTTL
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	return &Server{
		config:      cfg,
		echo:        e,
		detailCache: cache.NewCache[string, *gateway.ServiceDetail](cfg.DetailCacheTTL, constants.DefaultDetailCacheSize),
		startTime:   time.Now(),
	}
}

// SetDependencies sets the server dependencies
func (s *Server) SetDependencies(gw interfaces.ServiceGateway, svcCache interfaces.ServiceCache, reconciler Reconciler, coordinator ActionCoordinator, sessions session.Provider, database *db.DB) {
	s.gateway = gw
	s.cache = svcCache
	s.reconciler = reconciler
	s.coordinator = coordinator
	s.sessions = sessions
	s.db = database
}

// Echo returns the Echo instance
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Handler returns the HTTP handler with middleware and routes configured
func (s *Server) Handler() http.Handler {
	s.setupMiddleware()
	s.setupRoutes()
	return s.echo
}

// getDB safely retrieves the database instance
func (s *Server) getDB() (*db.DB, error) {
	if s.db == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "database not initialized")
	}
	return s.db, nil
}

// currentSession resolves the request's session
func (s *Server) currentSession(c echo.Context) (*session.Session, error) {
	if s.sessions == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session provider not initialized")
	}
	return s.sessions.Current(c.Request().Context())
}

// Start starts the server and blocks until shutdown
func (s *Server) Start(ctx ...context.Context) error {
	var shutdownCtx context.Context
	if len(ctx) > 0 {
		shutdownCtx = ctx[0]
	} else {
		shutdownCtx = context.Background()
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	logger.WithField("addr", addr).Info("Starting server")

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.echo,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		logger.Info("Shutting down server...")
	case <-shutdownCtx.Done():
		logger.Info("Context cancelled, shutting down server...")
	}

	shutdownTimeout, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	defer s.detailCache.Close()

	if err := srv.Shutdown(shutdownTimeout); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(logger.RequestLogger())
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.config.AllowOrigins,
		AllowHeaders: s.config.AllowHeaders,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
	}))

	s.echo.Use(contextEnricher())
}
