package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/semdex/auth-service/devices"
	"github.com/semdex/auth-service/devices/sqlite"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "devices.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := sqlite.Open("  ")
	require.Error(t, err)
}

func TestBindAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Bind(ctx, "device-123", 7))

	userID, err := store.Get(ctx, "device-123")
	require.NoError(t, err)
	require.Equal(t, int64(7), userID)

	// Rebinding replaces the prior owner.
	require.NoError(t, store.Bind(ctx, "device-123", 9))
	userID, err = store.Get(ctx, "device-123")
	require.NoError(t, err)
	require.Equal(t, int64(9), userID)
}

func TestGetUnboundDevice(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "device-123")
	require.ErrorIs(t, err, devices.NotRegisteredErr)
}

func TestBindRequiresDeviceID(t *testing.T) {
	store := openTestStore(t)

	require.Error(t, store.Bind(context.Background(), "", 1))
}
