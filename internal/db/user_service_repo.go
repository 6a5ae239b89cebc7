package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// UserServiceRepository handles database operations for cached services
type UserServiceRepository struct {
	db *DB
}

// NewUserServiceRepository creates a new cached service repository
func NewUserServiceRepository(db *DB) *UserServiceRepository {
	return &UserServiceRepository{db: db}
}

// Upsert inserts or updates a cached service keyed by (user_id, service_id).
// Calling it twice with identical input leaves one row; only updated_at
// moves. The row id and created_at of an existing row are preserved.
func (r *UserServiceRepository) Upsert(ctx context.Context, svc *UserService) error {
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}

	query := `
		INSERT INTO user_services (id, user_id, service_id, service_type, service_name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, service_id) DO UPDATE SET
			service_type = excluded.service_type,
			service_name = excluded.service_name,
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, query,
		svc.ID,
		svc.UserID,
		svc.ServiceID,
		svc.ServiceType,
		svc.ServiceName,
		svc.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cached service: %w", err)
	}

	return nil
}

// ListByUser returns all cached services for a user, newest-created first
func (r *UserServiceRepository) ListByUser(ctx context.Context, userID string) ([]UserService, error) {
	query := `
		SELECT id, user_id, service_id, service_type, service_name, status, created_at, updated_at
		FROM user_services
		WHERE user_id = ?
		ORDER BY created_at DESC, service_id DESC`

	var services []UserService
	if err := r.db.SelectContext(ctx, &services, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query cached services: %w", err)
	}

	return services, nil
}

// Get returns one cached service by its owner and provider service id
func (r *UserServiceRepository) Get(ctx context.Context, userID, serviceID string) (*UserService, error) {
	query := `
		SELECT id, user_id, service_id, service_type, service_name, status, created_at, updated_at
		FROM user_services
		WHERE user_id = ? AND service_id = ?`

	var svc UserService
	err := r.db.GetContext(ctx, &svc, query, userID, serviceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cached service not found")
		}
		return nil, fmt.Errorf("failed to get cached service: %w", err)
	}

	return &svc, nil
}

// UpdateStatus updates only the last-known status of a cached service
func (r *UserServiceRepository) UpdateStatus(ctx context.Context, userID, serviceID, status string) error {
	query := `
		UPDATE user_services
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND service_id = ?`

	result, err := r.db.ExecContext(ctx, query, status, userID, serviceID)
	if err != nil {
		return fmt.Errorf("failed to update cached service status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("cached service not found")
	}

	return nil
}

// Delete removes a cached service row
func (r *UserServiceRepository) Delete(ctx context.Context, userID, serviceID string) error {
	query := `DELETE FROM user_services WHERE user_id = ? AND service_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID, serviceID)
	if err != nil {
		return fmt.Errorf("failed to delete cached service: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("cached service not found")
	}

	return nil
}

// CountByUser returns the number of cached services for a user
func (r *UserServiceRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_services WHERE user_id = ?`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count cached services: %w", err)
	}
	return count, nil
}
