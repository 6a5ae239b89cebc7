// Package interfaces defines shared interfaces to avoid circular dependencies
package interfaces

import (
	"context"

	"gamepanel/internal/db"
	"gamepanel/internal/gateway"
)

// ServiceGateway is the boundary to the hosting provider's REST API
type ServiceGateway interface {
	ListServices(ctx context.Context) ([]gateway.RemoteService, error)
	GetServiceDetail(ctx context.Context, serviceID string) (*gateway.ServiceDetail, error)
	GetServiceStatus(ctx context.Context, serviceID string) (gateway.ServiceStatus, error)
	StartService(ctx context.Context, serviceID string) error
	StopService(ctx context.Context, serviceID string) error
	RestartService(ctx context.Context, serviceID string) error
	ReinstallService(ctx context.Context, serviceID, osID, password string) error
	HideService(ctx context.Context, serviceID string) error
	ExtendService(ctx context.Context, serviceID string, durationDays int) error
	CreateBackup(ctx context.Context, serviceID string) error
	ListOperatingSystems(ctx context.Context, serviceID string) ([]gateway.OSOption, error)
	ListIPAllocations(ctx context.Context, serviceID string) (*gateway.IPAllocations, error)
}

// ServiceCache is the persistence boundary for the cached service mirror
type ServiceCache interface {
	Upsert(ctx context.Context, svc *db.UserService) error
	ListByUser(ctx context.Context, userID string) ([]db.UserService, error)
	Get(ctx context.Context, userID, serviceID string) (*db.UserService, error)
	UpdateStatus(ctx context.Context, userID, serviceID, status string) error
	Delete(ctx context.Context, userID, serviceID string) error
}

// Reporter receives per-item failures that must not abort a batch. It
// replaces ad-hoc printing so failures stay observable and testable.
type Reporter interface {
	Report(ctx context.Context, operation string, err error, fields map[string]interface{})
}
