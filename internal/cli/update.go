package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/runnerr0/linkpad/internal/bookmark"
	"github.com/runnerr0/linkpad/internal/logger"
	"github.com/runnerr0/linkpad/internal/storage"
)

// Execute implements the go-flags Commander interface for UpdateCommand.
func (c *UpdateCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	cfg := loadConfig(c.globals)
	return c.executeWithStore(store, newFetchClient(cfg), cfg.Fetch.UserAgent)
}

// executeWithStore refetches titles for matched entries against a provided
// store and HTTP client (for testing).
func (c *UpdateCommand) executeWithStore(store *storage.SQLiteStore, client *http.Client, userAgent string) error {
	ctx := context.Background()

	log := newLogger(c.globals)
	defer log.Sync() //nolint:errcheck

	entries, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	matched, err := bookmark.Select(c.Args.Terms, entries)
	if err != nil {
		return fmt.Errorf("bad query: %w", err)
	}

	var updated, failed int
	for i := range matched {
		e := &matched[i]

		log.Debug("fetching title", logger.String("id", e.ShortID()), logger.String("url", e.URL))
		title, err := fetchTitle(client, e.URL, userAgent)
		if err != nil {
			log.Warn("title fetch failed", logger.Error(err))
			fmt.Printf("%s fetch failed: %v\n", e.ShortID(), err)
			failed++
			continue
		}

		if title == e.Title {
			continue
		}

		if c.DryRun {
			fmt.Printf("%s would update title: %q -> %q\n", e.ShortID(), e.Title, title)
			updated++
			continue
		}

		e.Title = title
		if err := store.Update(ctx, e); err != nil {
			return fmt.Errorf("update %s: %w", e.ShortID(), err)
		}
		fmt.Printf("%s updated title: %q\n", e.ShortID(), title)
		updated++
	}

	fmt.Printf("%d checked, %d updated, %d failed\n", len(matched), updated, failed)
	return nil
}
