package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

// ErrServerUnavailable is returned when the server command runs without a
// wired server starter
var ErrServerUnavailable = errors.New("server is not available in this mode")

// ServerCommand creates the dashboard server command
func ServerCommand(start func(ctx context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Run the dashboard HTTP API server",
		Long: `Server starts the dashboard HTTP API, begins periodic reconciliation
with the provider, and blocks until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return start(cmd.Context())
		},
	}
}
