package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gamepanel/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultProviderBaseURL, cfg.Provider.BaseURL)
	assert.Equal(t, constants.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, constants.DefaultSyncInterval, cfg.Sync.Interval)
	assert.Empty(t, cfg.Account.APIKey)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	isolateConfig(t)

	cfg := Default()
	cfg.Account.UserID = "user-1"
	cfg.Account.APIKey = "secret-key"
	cfg.Server.Port = 9090
	cfg.Sync.Interval = time.Minute
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "user-1", loaded.Account.UserID)
	assert.Equal(t, "secret-key", loaded.Account.APIKey)
	assert.Equal(t, 9090, loaded.Server.Port)
	assert.Equal(t, time.Minute, loaded.Sync.Interval)
}

func TestSaveUsesRestrictivePermissions(t *testing.T) {
	isolateConfig(t)

	cfg := Default()
	cfg.Account.APIKey = "secret-key"
	require.NoError(t, cfg.Save())

	path, err := Path()
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.SecureFilePermissions), info.Mode().Perm())
}

func TestEnvOverrides(t *testing.T) {
	isolateConfig(t)
	t.Setenv("GAMEPANEL_API_KEY", "env-key")
	t.Setenv("GAMEPANEL_PROVIDER_URL", "https://provider.test/v1")
	t.Setenv("GAMEPANEL_PORT", "9999")
	t.Setenv("GAMEPANEL_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Account.APIKey)
	assert.Equal(t, "https://provider.test/v1", cfg.Provider.BaseURL)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := isolateConfig(t)

	configDir := filepath.Join(dir, "gamepanel")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("not = [valid"), 0644))

	_, err := Load()
	assert.Error(t, err)
}
