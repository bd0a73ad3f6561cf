package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/linkpad/internal/bookmark"
)

func TestUpdate_RefetchesTitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>  Fresh &amp; Shiny  </title></head><body></body></html>`))
	}))
	t.Cleanup(srv.Close)

	store := newTestStore(t)
	ctx := context.Background()
	entry := &bookmark.Entry{URL: srv.URL, Title: "Stale"}
	require.NoError(t, store.Add(ctx, entry))

	cmd := &UpdateCommand{globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, srv.Client(), "linkpad/test"))
	})

	assert.Contains(t, output, "1 checked, 1 updated, 0 failed")

	got, err := store.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fresh & Shiny", got.Title, "entities decoded, whitespace collapsed")
}

func TestUpdate_DryRunWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<title>New Title</title>`))
	}))
	t.Cleanup(srv.Close)

	store := newTestStore(t)
	ctx := context.Background()
	entry := &bookmark.Entry{URL: srv.URL, Title: "Old Title"}
	require.NoError(t, store.Add(ctx, entry))

	cmd := &UpdateCommand{DryRun: true, globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, srv.Client(), ""))
	})

	assert.Contains(t, output, "would update title")

	got, err := store.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old Title", got.Title)
}

func TestUpdate_UnchangedTitleSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<title>Same</title>`))
	}))
	t.Cleanup(srv.Close)

	store := newTestStore(t)
	require.NoError(t, store.Add(context.Background(), &bookmark.Entry{URL: srv.URL, Title: "Same"}))

	cmd := &UpdateCommand{globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, srv.Client(), ""))
	})

	assert.Contains(t, output, "1 checked, 0 updated, 0 failed")
}

func TestUpdate_FetchFailureCounted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	store := newTestStore(t)
	require.NoError(t, store.Add(context.Background(), &bookmark.Entry{URL: srv.URL, Title: "T"}))

	cmd := &UpdateCommand{globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, srv.Client(), ""))
	})

	assert.Contains(t, output, "1 checked, 0 updated, 1 failed")
}

func TestUpdate_QueryFiltersTargets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<title>Hit</title>`))
	}))
	t.Cleanup(srv.Close)

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, &bookmark.Entry{URL: srv.URL, Title: "A", Tags: []string{"refresh"}}))
	require.NoError(t, store.Add(ctx, &bookmark.Entry{URL: srv.URL, Title: "B", Tags: []string{"keep"}}))

	cmd := &UpdateCommand{globals: &GlobalFlags{}}
	cmd.Args.Terms = []string{"tag:refresh"}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store, srv.Client(), ""))
	})

	assert.Contains(t, output, "1 checked")

	entries, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hit", entries[0].Title)
	assert.Equal(t, "B", entries[1].Title, "unmatched entry untouched")
}
