package testutil

import (
	"context"
	"errors"
	"sync"

	"gamepanel/internal/db"
	"gamepanel/internal/gateway"
)

// ErrNotInCache is returned by the mock cache for missing rows
var ErrNotInCache = errors.New("cached service not found")

// MockGateway is a mock implementation of the service gateway for testing.
// Every method counts its calls and returns either the configured error,
// the configured Fn hook, or the canned return value.
type MockGateway struct {
	mu    sync.Mutex
	calls map[string]int

	ListServicesReturn []gateway.RemoteService
	ListServicesError  error
	ListServicesFn     func(ctx context.Context) ([]gateway.RemoteService, error)

	DetailReturn *gateway.ServiceDetail
	DetailError  error

	StatusReturn gateway.ServiceStatus
	StatusError  error

	// ActionError is returned by every lifecycle action method
	ActionError error
	// ActionFn is called by every lifecycle action method when set
	ActionFn func(ctx context.Context, serviceID, action string) error

	OSReturn []gateway.OSOption
	OSError  error

	IPReturn *gateway.IPAllocations
	IPError  error
}

// NewMockGateway creates a new mock gateway
func NewMockGateway() *MockGateway {
	return &MockGateway{
		calls:        make(map[string]int),
		StatusReturn: gateway.StatusRunning,
	}
}

// Calls returns how many times the named method was invoked
func (m *MockGateway) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of invocations across all methods
func (m *MockGateway) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *MockGateway) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
}

func (m *MockGateway) ListServices(ctx context.Context) ([]gateway.RemoteService, error) {
	m.record("ListServices")
	if m.ListServicesFn != nil {
		return m.ListServicesFn(ctx)
	}
	return m.ListServicesReturn, m.ListServicesError
}

func (m *MockGateway) GetServiceDetail(ctx context.Context, serviceID string) (*gateway.ServiceDetail, error) {
	m.record("GetServiceDetail")
	return m.DetailReturn, m.DetailError
}

func (m *MockGateway) GetServiceStatus(ctx context.Context, serviceID string) (gateway.ServiceStatus, error) {
	m.record("GetServiceStatus")
	return m.StatusReturn, m.StatusError
}

func (m *MockGateway) action(ctx context.Context, serviceID, name string) error {
	m.record(name)
	if m.ActionFn != nil {
		return m.ActionFn(ctx, serviceID, name)
	}
	return m.ActionError
}

func (m *MockGateway) StartService(ctx context.Context, serviceID string) error {
	return m.action(ctx, serviceID, "StartService")
}

func (m *MockGateway) StopService(ctx context.Context, serviceID string) error {
	return m.action(ctx, serviceID, "StopService")
}

func (m *MockGateway) RestartService(ctx context.Context, serviceID string) error {
	return m.action(ctx, serviceID, "RestartService")
}

func (m *MockGateway) ReinstallService(ctx context.Context, serviceID, osID, password string) error {
	return m.action(ctx, serviceID, "ReinstallService")
}

func (m *MockGateway) HideService(ctx context.Context, serviceID string) error {
	return m.action(ctx, serviceID, "HideService")
}

func (m *MockGateway) ExtendService(ctx context.Context, serviceID string, durationDays int) error {
	return m.action(ctx, serviceID, "ExtendService")
}

func (m *MockGateway) CreateBackup(ctx context.Context, serviceID string) error {
	return m.action(ctx, serviceID, "CreateBackup")
}

func (m *MockGateway) ListOperatingSystems(ctx context.Context, serviceID string) ([]gateway.OSOption, error) {
	m.record("ListOperatingSystems")
	return m.OSReturn, m.OSError
}

func (m *MockGateway) ListIPAllocations(ctx context.Context, serviceID string) (*gateway.IPAllocations, error) {
	m.record("ListIPAllocations")
	return m.IPReturn, m.IPError
}

// MockServiceCache is an in-memory implementation of the service cache for
// testing components above the database layer
type MockServiceCache struct {
	mu   sync.Mutex
	rows map[string]map[string]db.UserService

	// UpsertError is returned by Upsert for the matching service id
	UpsertError   error
	UpsertErrorID string
	// ListError is returned by ListByUser when set
	ListError error
	// DeleteError is returned by Delete when set
	DeleteError error
	// UpdateStatusError is returned by UpdateStatus when set
	UpdateStatusError error
}

// NewMockServiceCache creates an empty in-memory cache
func NewMockServiceCache() *MockServiceCache {
	return &MockServiceCache{
		rows: make(map[string]map[string]db.UserService),
	}
}

func (m *MockServiceCache) Upsert(ctx context.Context, svc *db.UserService) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertError != nil && (m.UpsertErrorID == "" || m.UpsertErrorID == svc.ServiceID) {
		return m.UpsertError
	}
	if m.rows[svc.UserID] == nil {
		m.rows[svc.UserID] = make(map[string]db.UserService)
	}
	m.rows[svc.UserID][svc.ServiceID] = *svc
	return nil
}

func (m *MockServiceCache) ListByUser(ctx context.Context, userID string) ([]db.UserService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]db.UserService, 0, len(m.rows[userID]))
	for _, svc := range m.rows[userID] {
		out = append(out, svc)
	}
	return out, nil
}

func (m *MockServiceCache) Get(ctx context.Context, userID, serviceID string) (*db.UserService, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if svc, ok := m.rows[userID][serviceID]; ok {
		return &svc, nil
	}
	return nil, ErrNotInCache
}

func (m *MockServiceCache) UpdateStatus(ctx context.Context, userID, serviceID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	svc, ok := m.rows[userID][serviceID]
	if !ok {
		return ErrNotInCache
	}
	svc.Status = status
	m.rows[userID][serviceID] = svc
	return nil
}

func (m *MockServiceCache) Delete(ctx context.Context, userID, serviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.rows[userID], serviceID)
	return nil
}
