package storage

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestMigrations_CreatesSchema(t *testing.T) {
	db := openTestDB(t)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	assert.True(t, tableExists(t, db, "schema_migrations"))
	assert.True(t, tableExists(t, db, "entries"))
	assert.True(t, tableExists(t, db, "entry_tags"))
}

func TestMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())
	require.NoError(t, runner.Run(), "second run must be a no-op")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count, "migration recorded exactly once")
}

func TestMigrations_RecordsVersionAndName(t *testing.T) {
	db := openTestDB(t)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	var version int
	var name string
	require.NoError(t, db.QueryRow(
		"SELECT version, name FROM schema_migrations ORDER BY version LIMIT 1",
	).Scan(&version, &name))
	assert.Equal(t, 1, version)
	assert.Equal(t, "initial_schema", name)
}

func TestMigrations_ForeignKeyCascade(t *testing.T) {
	db := openTestDB(t)

	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	_, err := db.Exec(
		`INSERT INTO entries (id, url, created_at) VALUES ('abc', 'https://a.com', '2024-01-01T00:00:00Z')`,
	)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO entry_tags (entry_id, position, tag) VALUES ('abc', 0, 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM entries WHERE id = 'abc'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM entry_tags").Scan(&count))
	assert.Equal(t, 0, count, "tags cascade with entry delete")
}
