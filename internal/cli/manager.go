package cli

import (
	"context"

	"gamepanel/internal/actions"
	"gamepanel/internal/cli/commands"
	"gamepanel/internal/config"
	"gamepanel/internal/db"
	"gamepanel/internal/interfaces"
	"gamepanel/internal/session"
	syncer "gamepanel/internal/sync"

	"github.com/spf13/cobra"
)

// Manager handles CLI operations
type Manager struct {
	config      *config.Config
	gateway     interfaces.ServiceGateway
	cache       interfaces.ServiceCache
	reconciler  *syncer.Reconciler
	coordinator *actions.Coordinator
	sessions    session.Provider
	database    *db.DB
	startServer func(ctx context.Context) error
	rootCmd     *cobra.Command
}

// New creates a new CLI manager
func New(cfg *config.Config) *Manager {
	m := &Manager{
		config: cfg,
	}

	m.rootCmd = createRootCommand()

	return m
}

// SetDependencies sets the gateway, cache, reconciler, coordinator and
// session provider the commands operate on
func (m *Manager) SetDependencies(gw interfaces.ServiceGateway, cache interfaces.ServiceCache, reconciler *syncer.Reconciler, coordinator *actions.Coordinator, sessions session.Provider, database *db.DB) {
	m.gateway = gw
	m.cache = cache
	m.reconciler = reconciler
	m.coordinator = coordinator
	m.sessions = sessions
	m.database = database

	m.setupCommands()
}

// SetServerStarter sets the callback that runs the dashboard server. The
// application wires it so the server command reuses the already built
// dependency graph.
func (m *Manager) SetServerStarter(start func(ctx context.Context) error) {
	m.startServer = start
}

// Execute executes the CLI with the given arguments
func (m *Manager) Execute(args []string) error {
	return m.ExecuteWithContext(context.Background(), args)
}

// ExecuteWithContext executes the CLI with the given arguments and context
func (m *Manager) ExecuteWithContext(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}

// setupCommands sets up all CLI commands
func (m *Manager) setupCommands() {
	// Service management commands
	servicesCmd := &cobra.Command{
		Use:     "services",
		Short:   "Inspect and control your hosted services",
		Aliases: []string{"svc"},
	}
	for _, cmd := range commands.ServicesCommands(m.gateway, m.cache, m.reconciler, m.coordinator, m.sessions) {
		servicesCmd.AddCommand(cmd)
	}
	m.rootCmd.AddCommand(servicesCmd)

	// One-shot reconciliation
	m.rootCmd.AddCommand(commands.SyncCommand(m.reconciler, m.sessions))

	// Configuration commands
	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Configuration management commands",
		Aliases: []string{"cfg"},
	}
	for _, cmd := range commands.ConfigCommands(m.config) {
		configCmd.AddCommand(cmd)
	}
	m.rootCmd.AddCommand(configCmd)

	// Dashboard server
	m.rootCmd.AddCommand(commands.ServerCommand(func(ctx context.Context) error {
		if m.startServer == nil {
			return commands.ErrServerUnavailable
		}
		return m.startServer(ctx)
	}))
}
