// Package config loads and persists the gamepanel configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gamepanel/internal/constants"
	"gamepanel/internal/xdg"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the full gamepanel configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Provider ProviderConfig `toml:"provider"`
	Sync     SyncConfig     `toml:"sync"`
	Database DatabaseConfig `toml:"database"`
	Account  AccountConfig  `toml:"account"`
	LogLevel string         `toml:"log_level"`
}

// ServerConfig holds the dashboard HTTP server settings
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ProviderConfig holds the hosting provider API settings
type ProviderConfig struct {
	// BaseURL is the provider's versioned REST endpoint
	BaseURL string `toml:"base_url"`
}

// SyncConfig holds reconciliation settings
type SyncConfig struct {
	// Interval between periodic reconciliation passes
	Interval time.Duration `toml:"interval"`
}

// DatabaseConfig holds the cache database settings
type DatabaseConfig struct {
	// Path to the SQLite database file; empty means the XDG default
	Path string `toml:"path"`
}

// AccountConfig identifies the dashboard user and their credential. An
// empty APIKey is a valid, expected state: the dashboard runs in
// configuration-required mode until one is set.
type AccountConfig struct {
	UserID string `toml:"user_id"`
	Email  string `toml:"email"`
	APIKey string `toml:"api_key"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: constants.DefaultServerPort,
		},
		Provider: ProviderConfig{
			BaseURL: constants.DefaultProviderBaseURL,
		},
		Sync: SyncConfig{
			Interval: constants.DefaultSyncInterval,
		},
		LogLevel: "info",
	}
}

// Path returns the config file location
func Path() (string, error) {
	configDir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads the configuration file, falling back to defaults when it does
// not exist, then applies environment overrides
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = constants.DefaultSyncInterval
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = constants.DefaultServerPort
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = constants.DefaultProviderBaseURL
	}

	return cfg, nil
}

// Save writes the configuration file with restrictive permissions because
// it may carry the API key
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.SecureFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvOverrides lets environment variables win over the file, which
// keeps credentials out of the config file in deployments that prefer that
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GAMEPANEL_PROVIDER_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("GAMEPANEL_API_KEY"); v != "" {
		cfg.Account.APIKey = v
	}
	if v := os.Getenv("GAMEPANEL_USER_ID"); v != "" {
		cfg.Account.UserID = v
	}
	if v := os.Getenv("GAMEPANEL_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("GAMEPANEL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GAMEPANEL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
