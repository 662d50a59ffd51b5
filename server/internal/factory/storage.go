package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/harvinder-fsd/roster/server/internal/config"
	"github.com/harvinder-fsd/roster/server/internal/store/postgres"
	"github.com/harvinder-fsd/roster/server/internal/store/sqlite"
	"github.com/harvinder-fsd/roster/server/internal/store/sqlstore"
)

// NewStore opens and migrates the store selected by cfg.DBDriver.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sqlstore.Store, error) {
	var (
		st  *sqlstore.Store
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		st, err = sqlite.New(ctx, cfg.SQLitePath)
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("ROSTER_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		st, err = postgres.New(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DBDriver, err)
	}
	log.Debug().Str("driver", cfg.DBDriver).Msg("store migrated")
	return st, nil
}
