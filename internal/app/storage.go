package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/Brend-VanDenEynde/planner-api/internal/config"
	"github.com/Brend-VanDenEynde/planner-api/internal/storage"
)

const migrateTimeout = 30 * time.Second

var globalDB *sql.DB

// MustOpenStorage opens the configured database, checks the connection and
// creates the schema if needed.
func MustOpenStorage() {
	cfg := config.Global().Storage

	var (
		db          *sql.DB
		err         error
		pingTimeout time.Duration
	)
	switch cfg.Driver {
	case config.StorageDriverSQLite:
		db, err = storage.OpenSQLite(cfg.SQLite.Path, cfg.SQLite.BusyTimeout)
		pingTimeout = cfg.SQLite.BusyTimeout
	case config.StorageDriverPostgres:
		db, err = storage.OpenPostgres(cfg.Postgres.URL(), cfg.Postgres.ConnectTimeout)
		pingTimeout = cfg.Postgres.PingTimeout
	default:
		err = storage.ErrUnknownDriver
	}
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", cfg.Driver).
			Msg("failed to open storage")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", cfg.Driver).
			Msg("failed to ping storage")
		panic(err)
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancelMigrate()

	err = storage.Migrate(migrateCtx, db, cfg.Driver)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", cfg.Driver).
			Msg("failed to migrate storage")
		panic(err)
	}

	event := globalLogger.Info().Str("driver", cfg.Driver)
	if cfg.Driver == config.StorageDriverPostgres {
		event = event.
			Str("host", cfg.Postgres.Host).
			Int("port", cfg.Postgres.Port)
	} else {
		event = event.Str("path", cfg.SQLite.Path)
	}
	event.Msg("opened storage")

	globalDB = db
}

func CloseStorage() {
	err := globalDB.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close storage")
		return
	}
	globalLogger.Info().Msg("closed storage")
}
