package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store/storetest"
)

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.DocumentStore {
		s, err := New(context.Background(), filepath.Join(t.TempDir(), "nested", "insurance.db"))
		require.NoError(t, err)
		return s
	})
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, filepath.Join(t.TempDir(), "insurance.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.HealthPing(ctx))
}
