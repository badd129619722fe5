package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema keeps the migration marker in a single-row schema_version table.
type Schema struct {
	BaseRepository
}

var _ migrations.Schema = (*Schema)(nil)

// NewSchema creates the migration schema adapter for pool.
func NewSchema(pool *pgxpool.Pool) *Schema {
	return &Schema{BaseRepository: BaseRepository{Pool: pool}}
}

const ensureSchemaVersion = `
CREATE TABLE IF NOT EXISTS schema_version (
    id SMALLINT PRIMARY KEY CHECK (id = 1),
    version INTEGER NOT NULL
);
INSERT INTO schema_version (id, version) VALUES (1, 0) ON CONFLICT (id) DO NOTHING;
`

// CurrentVersion reads the marker, creating the marker table on first use.
func (s *Schema) CurrentVersion(ctx context.Context) (int, error) {
	if _, err := s.Pool.Exec(ctx, ensureSchemaVersion); err != nil {
		return 0, apperrors.Store("ensure schema_version", err)
	}
	var version int
	if err := s.Pool.QueryRow(ctx, `SELECT version FROM schema_version WHERE id = 1`).Scan(&version); err != nil {
		return 0, apperrors.Store("read schema_version", err)
	}
	return version, nil
}

// ApplyStep runs script and moves the marker to version in one transaction.
func (s *Schema) ApplyStep(ctx context.Context, script string, version int) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.Rollback(ctx, tx)

	// Without arguments pgx uses the simple protocol, so scripts may hold several statements.
	if _, err := tx.Exec(ctx, script); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrMigrationScript, err)
	}
	if _, err := tx.Exec(ctx, `UPDATE schema_version SET version = $1 WHERE id = 1`, version); err != nil {
		return fmt.Errorf("%w: setting schema_version to %d: %w", apperrors.ErrMigrationMarker, version, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit at version %d: %w", apperrors.ErrMigrationMarker, version, err)
	}
	return nil
}
