package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/migrations"
)

// Schema keeps the migration marker in the database header (PRAGMA user_version),
// which SQLite updates inside the surrounding transaction.
type Schema struct {
	BaseRepository
}

var _ migrations.Schema = (*Schema)(nil)

// NewSchema creates the migration schema adapter for db.
func NewSchema(db *sql.DB) *Schema {
	return &Schema{BaseRepository: BaseRepository{DB: db}}
}

// CurrentVersion reads the marker. A new file reports 0.
func (s *Schema) CurrentVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.DB.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, apperrors.Store("read user_version", err)
	}
	return version, nil
}

// ApplyStep runs script and moves the marker to version in one transaction.
func (s *Schema) ApplyStep(ctx context.Context, script string, version int) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Store("begin migration transaction", err)
	}
	defer s.Rollback(tx)

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrMigrationScript, err)
	}
	// PRAGMA does not accept bound parameters; version is an int.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("%w: setting user_version to %d: %w", apperrors.ErrMigrationMarker, version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit at version %d: %w", apperrors.ErrMigrationMarker, version, err)
	}
	return nil
}
