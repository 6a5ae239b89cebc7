package testutil

import (
	"database/sql"
	"testing"

	"gamepanel/internal/db"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SetupTestDB creates a new in-memory database for testing
func SetupTestDB(t *testing.T) *db.DB {
	t.Helper()

	// Create a real SQLite in-memory database using raw sql package first
	rawDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create raw database: %v", err)
	}

	// Enable foreign keys
	if _, err := rawDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	// Create schema directly
	schema := `
		CREATE TABLE user_services (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			service_type TEXT NOT NULL DEFAULT 'unknown',
			service_name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'unknown',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, service_id)
		);

		CREATE INDEX idx_user_services_user_id ON user_services(user_id);
		CREATE INDEX idx_user_services_status ON user_services(status);
	`

	if _, err := rawDB.Exec(schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	// Verify the table was created
	var count int
	err = rawDB.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = 'user_services'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to verify tables: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 table, got %d", count)
	}

	// Now wrap it with sqlx
	sqlxDB := sqlx.NewDb(rawDB, "sqlite3")

	// Create our custom DB wrapper with the same interface but skip migrations
	database := &db.DB{
		DB: sqlxDB,
	}

	// Register cleanup
	t.Cleanup(func() {
		database.Close()
	})

	return database
}
