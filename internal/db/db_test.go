package db

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func migrationsRoot() string {
	_, currentFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	database, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	dir := MigrationsPath(migrationsRoot(), DriverSQLite)
	require.NoError(t, RunMigrations(database, dir))
	require.NoError(t, RunMigrations(database, dir))

	var applied int
	require.NoError(t, database.Get(&applied, `SELECT COUNT(1) FROM schema_migrations`))
	assert.Equal(t, 1, applied)

	var tables int
	require.NoError(t, database.Get(&tables,
		`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'lists', 'tasks', 'friends')`))
	assert.Equal(t, 4, tables)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.ErrorContains(t, err, "unsupported db driver")
}

func TestMigrationsPath(t *testing.T) {
	assert.Equal(t, filepath.Join("m", "postgres"), MigrationsPath("m", DriverPostgres))
	assert.Equal(t, filepath.Join("m", "sqlite"), MigrationsPath("m", DriverSQLite))
}
