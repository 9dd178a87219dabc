package factory

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/config"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store/filestore"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store/memstore"
	storesqlite "github.com/Sideko-Inc/insurance-api-demo/server/internal/store/sqlite"
)

func TestNewStore_Drivers(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()

	cfg := config.NewForTesting()
	s, err := NewStore(ctx, cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &memstore.Store{}, s)

	cfg.DBDriver = config.DriverFile
	cfg.DataDir = t.TempDir()
	s, err = NewStore(ctx, cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &filestore.Store{}, s)

	cfg.DBDriver = config.DriverSQLite
	cfg.SQLitePath = cfg.DataDir + "/insurance.db"
	s, err = NewStore(ctx, cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &storesqlite.Store{}, s)
	require.NoError(t, s.Close())
}

func TestNewStore_Errors(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewForTesting()

	cfg.DBDriver = "unknown"
	_, err := NewStore(ctx, cfg, zerolog.Nop())
	assert.Error(t, err)

	cfg.DBDriver = config.DriverPostgres
	cfg.PostgresDSN = ""
	_, err = NewStore(ctx, cfg, zerolog.Nop())
	assert.Error(t, err)
}
