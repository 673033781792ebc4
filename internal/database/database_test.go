package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate_CreatesSchema(t *testing.T) {
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "nested", "solver.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"words", "session_results", "session_rows", "_migrations"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrate_SelfManagedAndOrdered(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/002_add.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('second');`)},
		"m/001_t.sql":   {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"m/003_tx.sql":  {Data: []byte(`BEGIN TRANSACTION; INSERT INTO t(v) VALUES ('third'); COMMIT;`)},
		"m/readme.txt":  {Data: []byte(`ignored`)},
	}
	require.NoError(t, migrate(db, fsys, "m"))

	rows, err := db.Query(`SELECT v FROM t ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()
	var got []string
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		got = append(got, v)
	}
	assert.Equal(t, []string{"second", "third"}, got)
}
