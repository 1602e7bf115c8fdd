package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/lock"
	"github.com/spec-kit/complaint-service/internal/persistence"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/repository/gormstore"
)

// Runtime holds the opened backing stores selected by configuration.
// Exactly one of Postgres and SQLite is set; Redis is set only for the
// redis lock driver.
type Runtime struct {
	Store    repository.Store
	Locker   lock.TicketLocker
	Postgres *persistence.Postgres
	SQLite   *persistence.SQLite
	Redis    *persistence.Redis

	cfg    config.Config
	logger *zap.Logger
}

// Open connects the record store and the ticket locker.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Runtime, error) {
	rt := &Runtime{cfg: cfg, logger: logger}

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.Postgres = pg
		rt.Store = repository.NewPostgresStore(pg.PoolHandle())
		if cfg.Postgres.RunMigrations {
			if err := rt.Migrate(ctx); err != nil {
				rt.Close()
				return nil, err
			}
		}
	case config.StoreDriverSQLite:
		db, err := persistence.NewSQLite(cfg.SQLite, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		rt.SQLite = db
		rt.Store = gormstore.NewStore(db.DB)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	switch cfg.Lock.Driver {
	case config.LockDriverRedis:
		rt.Redis = persistence.NewRedis(cfg.Redis, logger)
		rt.Locker = lock.NewRedisLocker(rt.Redis.Client, cfg.Lock.TTL(), cfg.Lock.RetryInterval(), logger)
	default:
		rt.Locker = lock.NewMemoryLocker()
	}
	return rt, nil
}

// Migrate brings the schema up to date. SQLite is migrated when opened, so
// running it again only re-applies the idempotent auto-migration.
func (r *Runtime) Migrate(ctx context.Context) error {
	switch {
	case r.Postgres != nil:
		if err := persistence.RunMigrations(ctx, r.Postgres.PoolHandle(), r.cfg.Store.MigrationsDir, r.logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	case r.SQLite != nil:
		if err := gormstore.AutoMigrate(r.SQLite.DB.WithContext(ctx)); err != nil {
			return fmt.Errorf("auto-migrate sqlite: %w", err)
		}
	}
	return nil
}

// Close releases every opened connection.
func (r *Runtime) Close() {
	if r.Postgres != nil {
		r.Postgres.Close()
	}
	if r.SQLite != nil {
		r.SQLite.Close()
	}
	if r.Redis != nil {
		r.Redis.Close()
	}
}
