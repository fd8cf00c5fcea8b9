package db_test

import (
	"path/filepath"
	"testing"

	"mrmm/internal/storage/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, database.Close()) })
	return database
}

func TestNew_CreatesDatabase(t *testing.T) {
	database := newTestDB(t)
	assert.NotNil(t, database)
}

func TestNew_RunsMigrations(t *testing.T) {
	database := newTestDB(t)

	var count int
	err := database.QueryRow("SELECT COUNT(*) FROM mod_origins").Scan(&count)
	assert.NoError(t, err)

	err = database.QueryRow("SELECT COUNT(*) FROM activity").Scan(&count)
	assert.NoError(t, err)

	var version int
	err = database.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestNew_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), db.FileName)

	first, err := db.New(path)
	require.NoError(t, err)
	require.NoError(t, first.SaveModOrigin("a.pak", "/tmp/a.zip"))
	require.NoError(t, first.Close())

	second, err := db.New(path)
	require.NoError(t, err)
	defer second.Close()

	origins, err := second.GetModOrigins()
	require.NoError(t, err)
	assert.Contains(t, origins, "a.pak")
}
