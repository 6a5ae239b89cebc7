package db_test

import (
	"context"
	"testing"

	"gamepanel/internal/db"
	"gamepanel/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedService(t *testing.T, repo *db.UserServiceRepository, userID, serviceID, name, status string) *db.UserService {
	t.Helper()
	svc := &db.UserService{
		UserID:      userID,
		ServiceID:   serviceID,
		ServiceType: "gameserver",
		ServiceName: name,
		Status:      status,
	}
	require.NoError(t, repo.Upsert(context.Background(), svc))
	return svc
}

func TestUpsertInsertsNewRow(t *testing.T) {
	database := testutil.SetupTestDB(t)
	repo := db.NewUserServiceRepository(database)
	ctx := context.Background()

	seedService(t, repo, "user-1", "svc-1", "alpha", "running")

	got, err := repo.Get(ctx, "user-1", "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "alpha", got.ServiceName)
	assert.Equal(t, "running", got.Status)
	assert.NotEmpty(t, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUpsertIsIdempotent(t *testing.T) {
	database := testutil.SetupTestDB(t)
	repo := db.NewUserServiceRepository(database)
	ctx := context.Background()

	seedService(t, repo, "user-1", "svc-1", "alpha", "running")
	first, err := repo.Get(ctx, "user-1", "svc-1")
	require.NoError(t, err)

	// Same key again with changed fields must update, not duplicate
	seedService(t, repo, "user-1", "svc-1", "alpha renamed", "stopped")

	count, err := repo.CountByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	second, err := repo.Get(ctx, "user-1", "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "alpha renamed", second.ServiceName)
	assert.Equal(t, "stopped", second.Status)

	// Row identity and creation time survive the update
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	// CURRENT_TIMESTAMP has second granularity, so the update may land in
	// the same tick
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestUpsertSameServiceDifferentUsers(t *testing.T) {
	database := testutil.SetupTestDB(t)
	repo := db.NewUserServiceRepository(database)
	ctx := context.Background()

	seedService(t, repo, "user-1", "svc-1", "alpha", "running")
	seedService(t, repo, "user-2", "svc-1", "alpha", "running")

	count1, err := repo.CountByUser(ctx, "user-1")
	require.NoError(t, err)
	count2, err := repo.CountByUser(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}

func TestListByUser(t *testing.T) {
	database := testutil.SetupTestDB(t)
	repo := db.NewUserServiceRepository(database)
	ctx := context.Background()

	seedService(t, repo, "user-1", "svc-1", "alpha", "running")
	seedService(t, repo, "user-1", "svc-2", "beta", "stopped")
	seedService(t, repo, "user-2", "svc-3", "gamma", "running")

	services, err := repo.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, services, 2)
	for _, svc := range services {
		assert.Equal(t, "user-1", svc.UserID)
	}

	services, err = repo.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestGetNotFound(t *testing.T) {
	database := testutil.SetupTestDB(t)
	repo := db.NewUserServiceRepository(database)

	_, err := repo.Get(context.Background(), "user-1", "missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateStatus(t *testing.T) {
	database := testutil.SetupTestDB(t)
	repo := db.NewUserServiceRepository(database)
	ctx := context.Background()

	seedService(t, repo, "user-1", "svc-1", "alpha", "running")

	require.NoError(t, repo.UpdateStatus(ctx, "user-1", "svc-1", "stopped"))

	got, err := repo.Get(ctx, "user-1", "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "stopped", got.Status)

	// Unknown key reports not found
	err = repo.UpdateStatus(ctx, "user-1", "missing", "stopped")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDelete(t *testing.T) {
	database := testutil.SetupTestDB(t)
	repo := db.NewUserServiceRepository(database)
	ctx := context.Background()

	seedService(t, repo, "user-1", "svc-1", "alpha", "running")

	require.NoError(t, repo.Delete(ctx, "user-1", "svc-1"))

	count, err := repo.CountByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	err = repo.Delete(ctx, "user-1", "svc-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
