package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rc := NewRootCommand()
	t.Cleanup(rc.app.close)

	var out bytes.Buffer
	rc.baseCmd.SetOut(&out)
	rc.baseCmd.SetErr(&out)
	rc.baseCmd.SetArgs(args)
	err := rc.baseCmd.Execute()
	return out.String(), err
}

func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func TestMigrateCommand(t *testing.T) {
	setupDataDir(t)

	out, err := runCommand(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version: 3")

	out, err = runCommand(t, "migrate", "--to", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version: 1")

	out, err = runCommand(t, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "current: 1")
	assert.Contains(t, out, "pending: [2 3]")
}

func TestMigrateCommand_BadTarget(t *testing.T) {
	setupDataDir(t)

	_, err := runCommand(t, "migrate", "--to=-1")
	assert.Error(t, err)
}

func TestDropCommand(t *testing.T) {
	dir := setupDataDir(t)

	_, err := runCommand(t, "migrate")
	require.NoError(t, err)
	dbPath := filepath.Join(dir, "rates.db")
	require.FileExists(t, dbPath)

	_, err = runCommand(t, "drop")
	require.Error(t, err)
	assert.FileExists(t, dbPath)

	out, err := runCommand(t, "drop", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "removed")
	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSyncCommand_UnknownProvider(t *testing.T) {
	setupDataDir(t)

	_, err := runCommand(t, "sync", "--provider", "nope")
	assert.Error(t, err)
}
