package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/config"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store/filestore"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store/memstore"
	storepg "github.com/Sideko-Inc/insurance-api-demo/server/internal/store/postgres"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/store/redisstore"
	storesqlite "github.com/Sideko-Inc/insurance-api-demo/server/internal/store/sqlite"
)

// NewStore returns the store.DocumentStore selected by cfg.DBDriver.
// Connections are opened synchronously since health checks need them immediately.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.DocumentStore, error) {
	bootstrapTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
	if bootstrapTimeout <= 0 {
		bootstrapTimeout = 5 * time.Second
	}
	bootCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	switch cfg.DBDriver {
	case config.DriverFile:
		s, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.DriverMemory:
		return memstore.New(), nil

	case config.DriverRedis:
		s, err := redisstore.Open(bootCtx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.DriverSQLite:
		s, err := storesqlite.New(bootCtx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("INSURANCE_API_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		s := storepg.NewWithDB(db)
		if err := s.Bootstrap(bootCtx); err != nil {
			log.Warn().Err(err).Str("driver", cfg.DBDriver).Msg("store bootstrap failed")
			_ = s.Close()
			return nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap completed")
		return s, nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
