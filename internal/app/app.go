// Package app wires the application together and dispatches between CLI
// and server mode
package app

import (
	"context"
	"fmt"

	"gamepanel/internal/actions"
	"gamepanel/internal/cli"
	"gamepanel/internal/config"
	"gamepanel/internal/db"
	"gamepanel/internal/gateway"
	"gamepanel/internal/logger"
	"gamepanel/internal/server"
	"gamepanel/internal/session"
	syncer "gamepanel/internal/sync"
)

// App represents the main application
type App struct {
	Config      *config.Config
	DB          *db.DB
	Gateway     *gateway.Client
	Cache       *db.UserServiceRepository
	Reconciler  *syncer.Reconciler
	Coordinator *actions.Coordinator
	Sessions    session.Provider
	Server      *server.Server
	CLI         *cli.Manager
}

// New creates a new application instance
func New() *App {
	return &App{}
}

// Run starts the application
func (a *App) Run(args []string) error {
	return a.RunWithContext(context.Background(), args)
}

// RunWithContext starts the application with a context for cancellation
func (a *App) RunWithContext(ctx context.Context, args []string) error {
	if err := a.initialize(); err != nil {
		return err
	}
	defer a.DB.Close()

	if len(args) == 0 {
		return a.CLI.ExecuteWithContext(ctx, []string{"--help"})
	}

	return a.CLI.ExecuteWithContext(ctx, args)
}

// initialize builds the dependency graph shared by every command
func (a *App) initialize() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.Config = cfg

	if cfg.LogLevel != "" {
		logger.SetLevel(cfg.LogLevel)
	}

	dbConfig := db.DefaultConfig()
	if cfg.Database.Path != "" {
		dbConfig.DSN = cfg.Database.Path
	}
	database, err := db.New(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	a.DB = database

	if err := database.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a.Gateway = gateway.New(cfg.Provider.BaseURL, cfg.Account.APIKey)
	a.Cache = db.NewUserServiceRepository(database)
	a.Reconciler = syncer.NewReconciler(a.Gateway, a.Cache, nil)
	a.Coordinator = actions.NewCoordinator(a.Gateway, a.Reconciler)
	a.Sessions = session.NewStaticProvider(&session.Session{
		UserID: cfg.Account.UserID,
		Email:  cfg.Account.Email,
		APIKey: cfg.Account.APIKey,
	})

	a.CLI = cli.New(cfg)
	a.CLI.SetDependencies(a.Gateway, a.Cache, a.Reconciler, a.Coordinator, a.Sessions, a.DB)
	a.CLI.SetServerStarter(a.runServer)

	return nil
}

// runServer starts periodic reconciliation and serves the dashboard API
// until the context is cancelled
func (a *App) runServer(ctx context.Context) error {
	serverConfig := server.DefaultConfig()
	serverConfig.Host = a.Config.Server.Host
	serverConfig.Port = a.Config.Server.Port
	serverConfig.LogLevel = a.Config.LogLevel

	a.Server = server.New(serverConfig)
	a.Server.SetDependencies(a.Gateway, a.Cache, a.Reconciler, a.Coordinator, a.Sessions, a.DB)

	// Periodic reconciliation only makes sense with a credential; without
	// one the server still runs and serves cached data.
	sess, err := a.Sessions.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve session: %w", err)
	}
	if sess.HasAPIKey() {
		sub := a.Reconciler.StartPolling(ctx, sess, a.Config.Sync.Interval)
		defer sub.Stop()
	} else {
		logger.Warn("No API key configured, serving cached data only")
	}

	logger.WithFields(logger.Fields{
		"port":      serverConfig.Port,
		"operation": "server_start",
	}).Info("Starting gamepanel server")
	return a.Server.Start(ctx)
}
