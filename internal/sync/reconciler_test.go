package sync_test

import (
	"context"
	"errors"
	"testing"

	"gamepanel/internal/db"
	paneerrors "gamepanel/internal/errors"
	"gamepanel/internal/gateway"
	"gamepanel/internal/session"
	syncer "gamepanel/internal/sync"
	"gamepanel/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *session.Session {
	return &session.Session{UserID: "user-1", APIKey: "test-key"}
}

func remoteService(id, name, status string) gateway.RemoteService {
	return gateway.RemoteService{
		ID:     id,
		Name:   name,
		Type:   "gameserver",
		Status: gateway.ServiceStatus(status),
	}
}

func TestSyncUserCreatesRows(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.ListServicesReturn = []gateway.RemoteService{
		remoteService("svc-1", "alpha", "running"),
		remoteService("svc-2", "beta", "stopped"),
	}
	cache := testutil.NewMockServiceCache()

	r := syncer.NewReconciler(gw, cache, nil)
	result, err := r.SyncUser(context.Background(), testSession())
	require.NoError(t, err)

	assert.Len(t, result.Synced, 2)
	assert.Empty(t, result.Deleted)
	assert.Empty(t, result.Errors)

	rows, err := cache.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSyncUserConverges(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.ListServicesReturn = []gateway.RemoteService{
		remoteService("svc-1", "alpha", "running"),
	}
	cache := testutil.NewMockServiceCache()
	ctx := context.Background()

	r := syncer.NewReconciler(gw, cache, nil)

	// First pass mirrors svc-1
	_, err := r.SyncUser(ctx, testSession())
	require.NoError(t, err)

	// svc-1 disappears upstream, svc-2 appears
	gw.ListServicesReturn = []gateway.RemoteService{
		remoteService("svc-2", "beta", "running"),
	}

	result, err := r.SyncUser(ctx, testSession())
	require.NoError(t, err)
	assert.Len(t, result.Synced, 1)
	assert.Equal(t, []string{"svc-1"}, result.Deleted)

	rows, err := cache.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "svc-2", rows[0].ServiceID)
}

func TestSyncUserIsIdempotent(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.ListServicesReturn = []gateway.RemoteService{
		remoteService("svc-1", "alpha", "running"),
	}
	cache := testutil.NewMockServiceCache()
	ctx := context.Background()

	r := syncer.NewReconciler(gw, cache, nil)

	for i := 0; i < 3; i++ {
		result, err := r.SyncUser(ctx, testSession())
		require.NoError(t, err)
		assert.Len(t, result.Synced, 1)
		assert.Empty(t, result.Deleted)
	}

	rows, err := cache.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSyncUserWithoutAPIKey(t *testing.T) {
	gw := testutil.NewMockGateway()
	cache := testutil.NewMockServiceCache()

	r := syncer.NewReconciler(gw, cache, nil)
	_, err := r.SyncUser(context.Background(), &session.Session{UserID: "user-1"})
	require.Error(t, err)

	assert.True(t, paneerrors.HasCode(err, paneerrors.ErrAPIKeyRequired))
	// No provider call may happen without a credential
	assert.Equal(t, 0, gw.TotalCalls())
}

func TestSyncUserListFailureAborts(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.ListServicesError = errors.New("connection refused")
	cache := testutil.NewMockServiceCache()

	r := syncer.NewReconciler(gw, cache, nil)
	_, err := r.SyncUser(context.Background(), testSession())
	assert.Error(t, err)
}

func TestSyncUserIsolatesItemFailures(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.ListServicesReturn = []gateway.RemoteService{
		remoteService("svc-1", "alpha", "running"),
		remoteService("svc-2", "beta", "running"),
		remoteService("svc-3", "gamma", "running"),
	}
	cache := testutil.NewMockServiceCache()
	cache.UpsertError = errors.New("disk full")
	cache.UpsertErrorID = "svc-2"

	reporter := &recordingReporter{}
	r := syncer.NewReconciler(gw, cache, reporter)

	result, err := r.SyncUser(context.Background(), testSession())
	require.NoError(t, err)

	// The failing row is reported, the others still land
	assert.Len(t, result.Synced, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "svc-2", result.Errors[0].ServiceID)
	assert.Equal(t, 1, reporter.count)

	rows, err := cache.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRecordStatus(t *testing.T) {
	gw := testutil.NewMockGateway()
	cache := testutil.NewMockServiceCache()
	ctx := context.Background()
	sess := testSession()

	require.NoError(t, cache.Upsert(ctx, &db.UserService{
		UserID:      "user-1",
		ServiceID:   "svc-1",
		ServiceName: "alpha",
		Status:      "running",
	}))

	r := syncer.NewReconciler(gw, cache, nil)
	r.RecordStatus(ctx, sess, "svc-1", "stopped")

	row, err := cache.Get(ctx, "user-1", "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "stopped", row.Status)
}

type recordingReporter struct {
	count int
}

func (r *recordingReporter) Report(ctx context.Context, operation string, err error, fields map[string]interface{}) {
	r.count++
}
