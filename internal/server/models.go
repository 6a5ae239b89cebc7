package server

import (
	"time"

	"gamepanel/internal/gateway"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Resource not found"`
}

// SuccessResponse represents a successful operation response
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// Session states reported to the dashboard
const (
	// SessionStateReady means a credential is configured and provider
	// calls are possible
	SessionStateReady = "ready"
	// SessionStateConfigurationRequired means no API key is configured;
	// only cached data is served
	SessionStateConfigurationRequired = "configuration_required"
)

// Service API models

// ServiceSummary is the dashboard's row view of one cached service
type ServiceSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name" example:"My Gameserver"`
	Type          string    `json:"type" example:"gameserver"`
	Status        string    `json:"status" example:"running"`
	PendingAction string    `json:"pending_action,omitempty" example:"restart"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ServicesResponse represents the cached service list
type ServicesResponse struct {
	Services []ServiceSummary `json:"services"`
	Total    int              `json:"total" example:"3"`
	// State reports whether provider calls are possible for this session
	State string `json:"state" example:"ready"`
	// Refreshed is true when this response reflects a just-completed
	// reconciliation pass rather than only the stored mirror
	Refreshed bool `json:"refreshed" example:"false"`
	// SyncFailures counts services that could not be mirrored during the
	// refresh; their rows may be stale
	SyncFailures int `json:"sync_failures,omitempty" example:"0"`
}

// ServiceDetailResponse represents the live detail view of one service
type ServiceDetailResponse struct {
	Service gateway.ServiceInfo `json:"service"`
	Product gateway.ProductInfo `json:"product"`
	Status  string              `json:"status" example:"running"`
	// Cached is true when the detail came from the short-lived detail
	// cache instead of a fresh provider call
	Cached bool `json:"cached" example:"false"`
}

// ActionRequest represents a lifecycle action submission
type ActionRequest struct {
	// Confirmed must be true for destructive actions
	Confirmed bool `json:"confirmed" example:"true"`
	// OSID selects the image for a reinstall
	OSID string `json:"os_id,omitempty" example:"debian-12"`
	// Password is the new root password for a reinstall
	Password string `json:"password,omitempty"`
}

// ActionResponse represents an accepted lifecycle action
type ActionResponse struct {
	Message string `json:"message" example:"Service action completed"`
	ID      string `json:"id"`
	Action  string `json:"action" example:"start"`
}

// ExtendRequest represents a runtime extension request
type ExtendRequest struct {
	DurationDays int `json:"duration_days" example:"30"`
}

// OSListResponse represents the installable images for a service
type OSListResponse struct {
	OperatingSystems []gateway.OSOption `json:"operating_systems"`
	Total            int                `json:"total" example:"12"`
}

// IPListResponse represents the IP allocations of a service
type IPListResponse struct {
	IPv4 []gateway.IPv4Allocation `json:"ipv4"`
	IPv6 []gateway.IPv6Allocation `json:"ipv6"`
}

// HealthResponse represents the health check result
type HealthResponse struct {
	Status        string `json:"status" example:"healthy"`
	Version       string `json:"version" example:"1.0.0"`
	Uptime        string `json:"uptime" example:"2h30m15s"`
	Database      string `json:"database" example:"healthy"`
	SchemaVersion uint   `json:"schema_version,omitempty" example:"1"`
	Session       string `json:"session" example:"ready"`
}
