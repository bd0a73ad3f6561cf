package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/linkpad/internal/bookmark"
	"github.com/runnerr0/linkpad/internal/storage"
)

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs show against a provided store (for testing).
func (c *ShowCommand) executeWithStore(store *storage.SQLiteStore) error {
	ctx := context.Background()

	entries, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	entry, err := bookmark.Resolve(entries, c.Args.ID)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printEntryJSON(entry)
	}

	switch c.Format {
	case "url":
		fmt.Println(entry.URL)
	case "json":
		return printEntryJSON(entry)
	default: // "full"
		printEntryFull(entry)
	}

	return nil
}

func printEntryFull(e *bookmark.Entry) {
	fmt.Println(e.ID)
	fmt.Printf("URL:      %s\n", e.URL)
	fmt.Printf("Title:    %s\n", e.Title)
	fmt.Printf("Tags:     %s\n", joinTags(e.Tags))
	fmt.Printf("Created:  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if e.Extended != "" {
		fmt.Println()
		fmt.Println(e.Extended)
	}
}

func printEntryJSON(e *bookmark.Entry) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSONEntry(e))
}
