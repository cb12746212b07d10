// Package database contains the concrete implementation of the persistence layer using GORM.
// PostgreSQL, MySQL and SQLite are supported through their GORM dialects.
package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"tasklist/config"
	"tasklist/internal/domain/lifecycle"
	"tasklist/internal/errors"
	"tasklist/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured database and registers its lifecycle hooks.
// The schema is migrated on start when database.autoMigrate is enabled.
func New(params Params) (*gorm.DB, error) {
	db, err := Open(params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	driver := params.Config.Database.Driver

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrapf(err, "failed to ping %s", driver)
			}

			if params.Config.Database.AutoMigrate {
				if err := Migrate(ctx, db); err != nil {
					return err
				}
				params.Logger.Info("Database schema migrated", slog.String("driver", driver))
			}

			go monitorDBPool(monitorCtx, params.Logger, driver, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to the database selected by cfg.Database.Driver without touching the schema.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormLogger := newGormSlogLogger(logger, cfg)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := pgLib.New(cfg.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create PostgreSQL client")
		}

		return db.Session(&gorm.Session{
			SkipDefaultTransaction: true,
			Logger:                 gormLogger,
		}), nil

	case config.DriverMySQL:
		db, err := gorm.Open(mysql.Open(cfg.Database.DSN), newGormConfig(gormLogger))
		if err != nil {
			return nil, errors.Wrap(err, "failed to open MySQL")
		}

		return db, nil

	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), newGormConfig(gormLogger))
		if err != nil {
			return nil, errors.Wrap(err, "failed to open SQLite")
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
		}
		// SQLite allows a single writer; one connection turns lock contention into queueing.
		sqlDB.SetMaxOpenConns(1)

		return db, nil

	default:
		return nil, errors.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}

// Migrate creates or updates the tables for every persistence model.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

func newGormConfig(gormLogger gormlogger.Interface) *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormLogger,
	}
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, driver string, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.String("driver", driver),
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
				}
				level := slog.LevelDebug
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					level = slog.LevelWarn
				}
				logger.LogAttrs(ctx, level, "Database pool wait detected", attrs...)
			}

			prev = cur
		}
	}
}
