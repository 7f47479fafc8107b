package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Sqlite In-Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.NoError(t, Close(db))
	})

	t.Run("Invalid MySQL Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         "mysql",
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "kofi",
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused)
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestOpenSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")

	db, err := Connect(Config{Driver: "sqlite", Name: path})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)").Error)
	require.NoError(t, Close(db))

	snap, err := OpenSnapshot(path)
	require.NoError(t, err)

	tables, err := ListTables(snap)
	require.NoError(t, err)
	assert.Equal(t, []string{"items"}, tables)
	assert.NoError(t, Close(snap))

	// The snapshot handle must not hold the file open after Close.
	assert.NoError(t, os.Remove(path))
}

func TestConfig_IsFileBacked(t *testing.T) {
	assert.True(t, Config{Driver: "sqlite", Name: "kofi.db"}.IsFileBacked())
	assert.False(t, Config{Driver: "sqlite", Name: ":memory:"}.IsFileBacked())
	assert.False(t, Config{Driver: "mysql", Name: "kofi"}.IsFileBacked())
}
