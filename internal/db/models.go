// Package db provides database models for gamepanel
package db

import (
	"time"
)

// UserService is the locally cached mirror of one remote service, keyed by
// the owning user and the provider's service id. The provider list is the
// source of truth; rows here exist only to serve fast dashboard reads.
type UserService struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	ServiceID   string    `json:"service_id" db:"service_id"`
	ServiceType string    `json:"service_type" db:"service_type"`
	ServiceName string    `json:"service_name" db:"service_name"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for UserService
func (UserService) TableName() string {
	return "user_services"
}
