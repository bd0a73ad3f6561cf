package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/linkpad/internal/storage"
)

// Execute implements the go-flags Commander interface for TagsCommand.
func (c *TagsCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs tags against a provided store (for testing).
func (c *TagsCommand) executeWithStore(store *storage.SQLiteStore) error {
	ctx := context.Background()

	tags, err := store.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := make([]map[string]interface{}, len(tags))
		for i, tc := range tags {
			out[i] = map[string]interface{}{"tag": tc.Tag, "count": tc.Count}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(tags) == 0 {
		fmt.Println("No tags")
		return nil
	}

	for _, tc := range tags {
		fmt.Printf("%-24s %d\n", tc.Tag, tc.Count)
	}
	return nil
}
