package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/linkpad/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	Database          string `json:"database"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	TotalEntries      int64  `json:"total_entries"`
	TotalTags         int64  `json:"total_tags"`
	OldestEntry       string `json:"oldest_entry,omitempty"`
	NewestEntry       string `json:"newest_entry,omitempty"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	cfg := loadConfig(c.globals)
	dbName := resolveDatabaseName(c.globals, cfg)
	dbPath, err := resolveDBPath(c.globals)
	if err != nil {
		return err
	}

	return c.executeWithStore(store, db, dbName, dbPath)
}

// executeWithStore runs status against a provided store and db (for testing).
func (c *StatusCommand) executeWithStore(store *storage.SQLiteStore, db *sql.DB, dbName, dbPath string) error {
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbSize := databaseSize(db, dbPath)

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(stats, dbName, dbPath, dbSize)
	}
	return c.printStatusHuman(stats, dbName, dbPath, dbSize)
}

func (c *StatusCommand) printStatusHuman(stats *storage.Stats, dbName, dbPath string, dbSize int64) error {
	fmt.Println("Linkpad Status")
	fmt.Println("==============")
	fmt.Printf("Version:   %s\n", c.version)
	fmt.Printf("Database:  %s (%s, %s)\n", dbName, dbPath, formatBytes(dbSize))
	fmt.Printf("Entries:   %d\n", stats.TotalEntries)
	fmt.Printf("Tags:      %d\n", stats.TotalTags)

	if stats.TotalEntries > 0 {
		fmt.Printf("Oldest:    %s\n", stats.OldestEntry.Local().Format("2006-01-02"))
		fmt.Printf("Newest:    %s\n", stats.NewestEntry.Local().Format("2006-01-02"))
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(stats *storage.Stats, dbName, dbPath string, dbSize int64) error {
	out := statusJSON{
		Version:           c.version,
		Database:          dbName,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: dbSize,
		TotalEntries:      stats.TotalEntries,
		TotalTags:         stats.TotalTags,
	}

	if stats.TotalEntries > 0 {
		out.OldestEntry = stats.OldestEntry.UTC().Format(time.RFC3339)
		out.NewestEntry = stats.NewestEntry.UTC().Format(time.RFC3339)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// databaseSize returns the database file size in bytes. For in-memory
// databases it falls back to page_count * page_size.
func databaseSize(db *sql.DB, dbPath string) int64 {
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	var pageCount, pageSize int64
	if err := db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
