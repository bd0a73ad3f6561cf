package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/runnerr0/linkpad/internal/bookmark"
	"github.com/runnerr0/linkpad/internal/storage"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, args)
}

// executeWithStore runs the list against a provided store (for testing).
// Extra positional args go-flags didn't consume are treated as query terms.
func (c *ListCommand) executeWithStore(store *storage.SQLiteStore, args []string) error {
	terms := c.Args.Terms
	terms = append(terms, args...)

	ctx := context.Background()
	entries, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	matched, err := bookmark.Select(terms, entries)
	if err != nil {
		return fmt.Errorf("bad query: %w", err)
	}

	// Sorting and truncation are display concerns layered on the match set.
	sortEntries(matched, c.Sort)
	if c.Limit > 0 && len(matched) > c.Limit {
		matched = matched[:c.Limit]
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(matched)
	}
	return c.printHuman(matched)
}

// sortEntries stably reorders entries by the named field. An empty field
// keeps the stored insertion order.
func sortEntries(entries []bookmark.Entry, field string) {
	switch field {
	case "id":
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	case "url":
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].URL < entries[j].URL })
	case "title":
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Title < entries[j].Title })
	case "created":
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })
	}
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func (c *ListCommand) printHuman(entries []bookmark.Entry) error {
	if len(entries) == 0 {
		fmt.Println("No matching entries")
		return nil
	}

	for i := range entries {
		e := &entries[i]
		line := fmt.Sprintf("%s %s [%s]", e.ShortID(), e.Title, e.URL)
		if len(e.Tags) > 0 {
			line += fmt.Sprintf(" (%s)", joinTags(e.Tags))
		}
		fmt.Println(line)
	}

	return nil
}

type jsonEntry struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Extended    string   `json:"extended,omitempty"`
	CreatedDate string   `json:"created_date"`
}

type jsonListOutput struct {
	Count   int         `json:"count"`
	Entries []jsonEntry `json:"entries"`
}

func toJSONEntry(e *bookmark.Entry) jsonEntry {
	return jsonEntry{
		ID:          e.ID,
		URL:         e.URL,
		Title:       e.Title,
		Tags:        e.Tags,
		Extended:    e.Extended,
		CreatedDate: e.CreatedAt.Format(time.RFC3339),
	}
}

func (c *ListCommand) printJSON(entries []bookmark.Entry) error {
	out := jsonListOutput{
		Count:   len(entries),
		Entries: make([]jsonEntry, len(entries)),
	}
	for i := range entries {
		out.Entries[i] = toJSONEntry(&entries[i])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
