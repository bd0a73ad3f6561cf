package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/linkpad/internal/bookmark"
	"github.com/runnerr0/linkpad/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// newTestStore creates a migrated in-memory store for testing.
func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// seedEntries populates a store with a small fixed catalog.
func seedEntries(t *testing.T, store *storage.SQLiteStore) []bookmark.Entry {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	fixtures := []bookmark.Entry{
		{URL: "https://docs.docker.com/guide", Title: "Docker Guide", Tags: []string{"docker"}, CreatedAt: now.Add(-72 * time.Hour)},
		{URL: "https://openzfs.org/wiki", Title: "ZFS Guide", Tags: []string{"zfs", "storage"}, CreatedAt: now.Add(-48 * time.Hour)},
		{URL: "https://www.reddit.com/r/selfhosted", Title: "Selfhosted", Tags: []string{}, CreatedAt: now.Add(-24 * time.Hour)},
	}

	out := make([]bookmark.Entry, len(fixtures))
	for i := range fixtures {
		e := fixtures[i]
		require.NoError(t, store.Add(ctx, &e))
		out[i] = e
	}
	return out
}
