package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/SscSPs/exchange_rates_app/internal/apperrors"
	"github.com/SscSPs/exchange_rates_app/internal/core/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "rates.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func columnExists(t *testing.T, db *sql.DB, table, column string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

var rateSteps = []migrations.Step{
	{Version: 1, Up: "CREATE TABLE rate (quote TEXT, base TEXT, rate REAL)", Down: "DROP TABLE rate"},
	{Version: 2, Up: "ALTER TABLE rate ADD COLUMN updated_at", Down: "ALTER TABLE rate DROP COLUMN updated_at"},
}

func TestSchema_FreshDatabaseIsVersionZero(t *testing.T) {
	schema := NewSchema(openTestDB(t))
	v, err := schema.CurrentVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestSchema_MigrateLatestAndBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	schema := NewSchema(db)
	engine := migrations.NewEngine(schema, rateSteps, nil)

	require.NoError(t, engine.Migrate(ctx, migrations.Latest()))
	v, err := schema.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.True(t, columnExists(t, db, "rate", "updated_at"))

	require.NoError(t, engine.Migrate(ctx, migrations.Version(1)))
	v, err = schema.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, tableExists(t, db, "rate"))
	assert.False(t, columnExists(t, db, "rate", "updated_at"))

	require.NoError(t, engine.Migrate(ctx, migrations.Version(0)))
	v, err = schema.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.False(t, tableExists(t, db, "rate"))
}

func TestSchema_ScriptFailureKeepsCommittedSteps(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	schema := NewSchema(db)
	steps := []migrations.Step{
		rateSteps[0],
		{Version: 2, Up: "ALTER TABLE missing_table ADD COLUMN updated_at", Down: "SELECT 1"},
	}

	err := migrations.NewEngine(schema, steps, nil).Migrate(ctx, migrations.Latest())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMigrationScript)

	v, err := schema.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, tableExists(t, db, "rate"))
}

func TestSchema_FailedStepRollsBackItsScript(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	schema := NewSchema(db)

	err := schema.ApplyStep(ctx, "CREATE TABLE half (id INTEGER); CREATE TABLE half (id INTEGER);", 1)
	require.ErrorIs(t, err, apperrors.ErrMigrationScript)

	v, err := schema.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.False(t, tableExists(t, db, "half"))
}

func TestSchema_DefaultMigrationsRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	engine := migrations.NewEngine(NewSchema(db), defaultSteps(t), nil)

	require.NoError(t, engine.Migrate(ctx, migrations.Latest()))
	for _, table := range []string{"exchange_rate", "users", "auth_token"} {
		assert.True(t, tableExists(t, db, table), table)
	}

	status, err := engine.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, status.Current)
	assert.Empty(t, status.Pending)

	require.NoError(t, engine.Migrate(ctx, migrations.Version(0)))
	for _, table := range []string{"exchange_rate", "users", "auth_token"} {
		assert.False(t, tableExists(t, db, table), table)
	}
}
