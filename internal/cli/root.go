package cli

import (
	"github.com/spf13/cobra"
)

// createRootCommand creates the root command with global flags
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gamepanel",
		Short: "Dashboard and CLI for provider-hosted game and VPS services",
		Long: `gamepanel mirrors your hosting provider's service list into a local
database and lets you inspect and control those services. It serves a
dashboard HTTP API and offers the same operations on the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to showing help if no subcommand
			return cmd.Help()
		},
	}

	return rootCmd
}
