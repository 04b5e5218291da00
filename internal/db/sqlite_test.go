package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnMaxLifetime(t *testing.T) {
	assert.Zero(t, connMaxLifetime(":memory:"))
	assert.Zero(t, connMaxLifetime("file::memory:?cache=shared"))
	assert.Equal(t, time.Hour, connMaxLifetime(filepath.Join(t.TempDir(), "cutoffs.db")))
}

func TestInMemorySQLiteKeepsTablesAcrossQueries(t *testing.T) {
	sqlite, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	_, err = sqlite.DB.Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)
	_, err = sqlite.DB.Exec(`INSERT INTO t (v) VALUES (1)`)
	require.NoError(t, err)

	var n int
	require.NoError(t, sqlite.DB.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestFileSQLitePersistsAcrossHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cutoffs.db")

	first, err := NewSQLiteDB(path)
	require.NoError(t, err)
	_, err = first.DB.Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLiteDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	var n int
	require.NoError(t, second.DB.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	assert.Zero(t, n)
}
