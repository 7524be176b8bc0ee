// Package storage elige el backend de mascotas según la configuración.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"petpulse/internal/adapters/storage/memory"
	mongostore "petpulse/internal/adapters/storage/mongo"
	"petpulse/internal/adapters/storage/postgres"
	"petpulse/internal/adapters/storage/sqlite"
	"petpulse/internal/config"
	"petpulse/internal/domain/pets"
	"petpulse/internal/platform/logger"
)

// CloseFunc libera las conexiones del backend. Para memory no hace nada.
type CloseFunc func() error

func noopClose() error { return nil }

// Open abre el backend configurado y, si corresponde, aplica migraciones.
func Open(ctx context.Context, cfg config.StoreConfig, log logger.Logger) (pets.Repository, CloseFunc, error) {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With(map[string]any{"driver": cfg.Driver})

	switch cfg.Driver {
	case config.DriverMemory, "":
		log.Info("using in-memory store", nil)
		return memory.NewPetRepo(), noopClose, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		if err := migrate(ctx, cfg, log, db, postgres.Migrate); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("store ready", nil)
		return postgres.NewPetsRepo(db), db.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		if err := migrate(ctx, cfg, log, db, sqlite.Migrate); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("store ready", map[string]any{"path": cfg.DSN})
		return sqlite.NewPetsRepo(db), db.Close, nil

	case config.DriverMongo:
		c, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.DSN,
			Database: cfg.Database,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("store ready", map[string]any{"database": cfg.Database})
		return mongostore.NewPetsRepo(c.Database()), c.Close, nil

	default:
		return nil, nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

func migrate(
	ctx context.Context,
	cfg config.StoreConfig,
	log logger.Logger,
	db *sql.DB,
	up func(context.Context, *sql.DB) (int, error),
) error {
	if !cfg.Migrate {
		return nil
	}
	n, err := up(ctx, db)
	if err != nil {
		return err
	}
	log.Info("migrations applied", map[string]any{"count": n})
	return nil
}
