package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/runnerr0/linkpad/internal/bookmark"
	"github.com/runnerr0/linkpad/internal/logger"
	"github.com/runnerr0/linkpad/internal/storage"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs the add logic against a provided store (used by tests).
func (c *AddCommand) executeWithStore(store *storage.SQLiteStore) error {
	rawURL := c.Args.URL

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s", rawURL)
	}

	log := newLogger(c.globals)
	defer log.Sync() //nolint:errcheck

	title := c.Title
	if title == "" && !c.NoFetch {
		cfg := loadConfig(c.globals)
		client := newFetchClient(cfg)

		log.Debug("fetching title", logger.String("url", rawURL))
		fetched, err := fetchTitle(client, rawURL, cfg.Fetch.UserAgent)
		if err != nil {
			log.Warn("title fetch failed", logger.Error(err))
		} else {
			title = fetched
		}
	}

	entry := &bookmark.Entry{
		URL:      rawURL,
		Title:    title,
		Tags:     c.Tags,
		Extended: c.Extended,
	}

	ctx := context.Background()
	if err := store.Add(ctx, entry); err != nil {
		return fmt.Errorf("storing entry: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"id":           entry.ID,
			"url":          entry.URL,
			"title":        entry.Title,
			"tags":         entry.Tags,
			"created_date": entry.CreatedAt.Format(time.RFC3339),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Added %s\n", entry.ShortID())
	fmt.Printf("  URL:   %s\n", entry.URL)
	fmt.Printf("  Title: %s\n", entry.Title)
	if len(entry.Tags) > 0 {
		fmt.Printf("  Tags:  %s\n", joinTags(entry.Tags))
	}

	return nil
}
