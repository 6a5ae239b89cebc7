package commands

import (
	"fmt"

	"gamepanel/internal/config"
	"gamepanel/internal/logger"

	"github.com/spf13/cobra"
)

// ConfigCommands creates the configuration management commands
func ConfigCommands(cfg *config.Config) []*cobra.Command {
	cmds := []*cobra.Command{}

	// gamepanel config show
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Provider URL:   %s\n", cfg.Provider.BaseURL)
			fmt.Printf("Server:         %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			fmt.Printf("Sync interval:  %s\n", cfg.Sync.Interval)
			fmt.Printf("Log level:      %s\n", cfg.LogLevel)
			fmt.Printf("User ID:        %s\n", cfg.Account.UserID)
			fmt.Printf("API key:        %s\n", redactKey(cfg.Account.APIKey))
			return nil
		},
	}
	cmds = append(cmds, showCmd)

	// gamepanel config path
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	cmds = append(cmds, pathCmd)

	// gamepanel config set-key <api-key>
	setKeyCmd := &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Store the provider API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Account.APIKey = args[0]
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			logger.Info("✓ API key saved")
			return nil
		},
	}
	cmds = append(cmds, setKeyCmd)

	return cmds
}

// redactKey keeps just enough of the key to recognize it
func redactKey(key string) string {
	if key == "" {
		return "(not configured)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
