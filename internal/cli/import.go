package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/linkpad/internal/bookmark"
	"github.com/runnerr0/linkpad/internal/storage"
)

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore adds entries from a YAML export file (for testing).
// Entries carrying an id keep it, so an export/import round-trip preserves
// identities and created dates.
func (c *ImportCommand) executeWithStore(store *storage.SQLiteStore) error {
	data, err := os.ReadFile(c.Args.File)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	var docs []exportEntry
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("parse import file: %w", err)
	}

	ctx := context.Background()
	for i := range docs {
		entry, err := fromExportEntry(&docs[i])
		if err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		if err := store.Add(ctx, entry); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i+1, entry.URL, err)
		}
	}

	fmt.Printf("Imported %d entr%s\n", len(docs), plural(len(docs), "y", "ies"))
	return nil
}

func fromExportEntry(doc *exportEntry) (*bookmark.Entry, error) {
	entry := &bookmark.Entry{
		ID:       doc.ID,
		URL:      doc.URL,
		Title:    doc.Title,
		Tags:     doc.Tags,
		Extended: doc.Extended,
	}
	entry.Normalize()

	if doc.CreatedDate != "" {
		created, err := time.Parse(time.RFC3339, doc.CreatedDate)
		if err != nil {
			return nil, fmt.Errorf("bad created_date %q: %w", doc.CreatedDate, err)
		}
		entry.CreatedAt = created
	}

	return entry, nil
}
