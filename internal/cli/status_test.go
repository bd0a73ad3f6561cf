package cli

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/linkpad/internal/storage"
)

// newTestStoreWithDB is like newTestStore but also exposes the *sql.DB,
// which the status command needs for the size fallback query.
func newTestStoreWithDB(t *testing.T) (*storage.SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, db
}

func TestStatus_Human(t *testing.T) {
	store, db := newTestStoreWithDB(t)
	seedEntries(t, store)

	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "1.0.0"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, db, "default", "/nonexistent/linkpad.db"))
	})

	assert.Contains(t, output, "Linkpad Status")
	assert.Contains(t, output, "Version:   1.0.0")
	assert.Contains(t, output, "Database:  default")
	assert.Contains(t, output, "Entries:   3")
	assert.Contains(t, output, "Tags:      3")
	assert.Contains(t, output, "Oldest:")
	assert.Contains(t, output, "Newest:")
}

func TestStatus_HumanEmptyDatabase(t *testing.T) {
	store, db := newTestStoreWithDB(t)

	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "1.0.0"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, db, "default", "/nonexistent/linkpad.db"))
	})

	assert.Contains(t, output, "Entries:   0")
	assert.NotContains(t, output, "Oldest:")
	assert.NotContains(t, output, "Newest:")
}

func TestStatus_JSON(t *testing.T) {
	store, db := newTestStoreWithDB(t)
	seedEntries(t, store)

	cmd := &StatusCommand{globals: &GlobalFlags{JSON: true}, version: "2.0.0"}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, db, "work", "/nonexistent/linkpad.db"))
	})

	var out statusJSON
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, "2.0.0", out.Version)
	assert.Equal(t, "work", out.Database)
	assert.Equal(t, int64(3), out.TotalEntries)
	assert.Equal(t, int64(3), out.TotalTags)
	assert.NotEmpty(t, out.OldestEntry)
	assert.NotEmpty(t, out.NewestEntry)
}

func TestDatabaseSize_InMemoryFallback(t *testing.T) {
	_, db := newTestStoreWithDB(t)

	// No file at the path; the pragma fallback still reports pages in use.
	size := databaseSize(db, "/nonexistent/linkpad.db")
	assert.Greater(t, size, int64(0))
}
