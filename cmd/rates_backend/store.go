package main

import (
	"context"
	"log/slog"

	"github.com/SscSPs/exchange_rates_app/internal/core/migrations"
	portsrepo "github.com/SscSPs/exchange_rates_app/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/SscSPs/exchange_rates_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/exchange_rates_app/internal/repositories/database/sqlite"
)

// store bundles the repositories and migration schema of the configured driver.
type store struct {
	repos  portsrepo.RepositoryProvider
	schema migrations.Schema
	close  func()
}

func (a *application) openStore(ctx context.Context) (*store, error) {
	switch a.cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, err := pgsql.NewPgxPool(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.logger.Info("Database connection pool established", slog.String("driver", config.DriverPostgres))
		return &store{
			repos:  pgsql.NewRepositoryProvider(pool),
			schema: pgsql.NewSchema(pool),
			close:  pool.Close,
		}, nil
	default:
		db, err := sqlite.Open(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.logger.Info("Database opened", slog.String("driver", config.DriverSQLite), slog.String("path", a.cfg.DatabaseURL))
		return &store{
			repos:  sqlite.NewRepositoryProvider(db),
			schema: sqlite.NewSchema(db),
			close: func() {
				if err := db.Close(); err != nil {
					a.logger.Error("Error closing database", slog.String("error", err.Error()))
				}
			},
		}, nil
	}
}

func (a *application) engine(st *store) *migrations.Engine {
	return migrations.NewEngine(st.schema, a.cfg.Migrations, a.logger)
}

// migrateOnStartup brings the schema to the latest version unless disabled.
func (a *application) migrateOnStartup(ctx context.Context, st *store) error {
	if !a.cfg.MigrateOnStartup {
		a.logger.Info("Skipping migrations on startup")
		return nil
	}
	return a.engine(st).Migrate(ctx, migrations.Latest())
}
