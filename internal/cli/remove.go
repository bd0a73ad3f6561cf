package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/linkpad/internal/bookmark"
	"github.com/runnerr0/linkpad/internal/storage"
)

// Execute implements the go-flags Commander interface for RemoveCommand.
func (c *RemoveCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs remove against a provided store (for testing).
// All id arguments are resolved before anything is deleted, so a bad or
// ambiguous id aborts the whole command.
func (c *RemoveCommand) executeWithStore(store *storage.SQLiteStore) error {
	ctx := context.Background()

	entries, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	targets := make([]*bookmark.Entry, 0, len(c.Args.IDs))
	for _, id := range c.Args.IDs {
		entry, err := bookmark.Resolve(entries, id)
		if err != nil {
			return err
		}
		targets = append(targets, entry)
	}

	if !c.Force {
		for _, e := range targets {
			fmt.Printf("  %s %s [%s]\n", e.ShortID(), e.Title, e.URL)
		}
		fmt.Printf("Remove %d entr%s? [y/N] ", len(targets), plural(len(targets), "y", "ies"))

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" {
			return fmt.Errorf("aborted")
		}
	}

	for _, e := range targets {
		if err := store.Delete(ctx, e.ID); err != nil {
			return fmt.Errorf("delete %s: %w", e.ShortID(), err)
		}
		fmt.Printf("Removed %s\n", e.ShortID())
	}

	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
