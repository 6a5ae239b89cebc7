// Package constants defines application-wide constants to avoid magic numbers
package constants

import "time"

// Version is the gamepanel release version
const Version = "1.0.0"

// Network and Port Constants
const (
	// DefaultServerPort is the default port for the gamepanel dashboard API server
	DefaultServerPort = 8080
)

// Provider API Configuration
const (
	// DefaultProviderBaseURL is the hosting provider's REST endpoint
	DefaultProviderBaseURL = "https://backend.panel.gamestates.de/v1"

	// DefaultGatewayTimeout is the timeout for provider API requests
	DefaultGatewayTimeout = 30 * time.Second
)

// Synchronization Configuration
const (
	// DefaultSyncInterval is how often the reconciler refreshes the cached
	// service list from the provider
	DefaultSyncInterval = 30 * time.Second
)

// Action Validation
const (
	// MinReinstallPasswordLength is the minimum length for the root password
	// supplied with a reinstall request
	MinReinstallPasswordLength = 8
)

// File System Permissions
const (
	// DirPermissions is the standard directory permissions for gamepanel directories
	DirPermissions = 0755

	// FilePermissions is the standard file permissions for gamepanel config files
	FilePermissions = 0644

	// SecureFilePermissions is used for files containing sensitive data
	SecureFilePermissions = 0600
)

// Database Configuration
const (
	// DefaultMaxOpenConnections is the default maximum number of database connections
	DefaultMaxOpenConnections = 25

	// DefaultMaxIdleConnections is the default maximum number of idle database connections
	DefaultMaxIdleConnections = 5

	// DefaultConnectionTimeout is the default database connection timeout
	DefaultConnectionTimeout = 5 * time.Minute

	// DefaultIdleTimeout is the default database idle connection timeout
	DefaultIdleTimeout = 1 * time.Minute
)

// HTTP Configuration
const (
	// DefaultServerReadTimeout is the default server read timeout
	DefaultServerReadTimeout = 10 * time.Second

	// DefaultServerWriteTimeout is the default server write timeout
	DefaultServerWriteTimeout = 10 * time.Second

	// DefaultServerShutdownTimeout is the default server graceful shutdown timeout
	DefaultServerShutdownTimeout = 30 * time.Second
)

// Caching
const (
	// DefaultDetailCacheTTL is how long live service detail responses are
	// kept before the next request goes back to the provider
	DefaultDetailCacheTTL = 15 * time.Second

	// DefaultDetailCacheSize is the maximum number of cached detail responses
	DefaultDetailCacheSize = 256
)
