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

// exportEntry is the YAML representation used by export and import.
type exportEntry struct {
	ID          string   `yaml:"id"`
	URL         string   `yaml:"url"`
	Title       string   `yaml:"title"`
	Tags        []string `yaml:"tags"`
	Extended    string   `yaml:"extended,omitempty"`
	CreatedDate string   `yaml:"created_date"`
}

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore dumps all entries as YAML to stdout (for testing).
func (c *ExportCommand) executeWithStore(store *storage.SQLiteStore) error {
	ctx := context.Background()

	entries, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	out := make([]exportEntry, len(entries))
	for i := range entries {
		out[i] = toExportEntry(&entries[i])
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(out)
}

func toExportEntry(e *bookmark.Entry) exportEntry {
	return exportEntry{
		ID:          e.ID,
		URL:         e.URL,
		Title:       e.Title,
		Tags:        e.Tags,
		Extended:    e.Extended,
		CreatedDate: e.CreatedAt.Format(time.RFC3339),
	}
}
