package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/linkpad/internal/bookmark"
	"github.com/runnerr0/linkpad/internal/storage"
)

// editableEntry is the YAML document presented in the editor. ID and
// created date are deliberately absent: they are immutable.
type editableEntry struct {
	URL      string   `yaml:"url"`
	Title    string   `yaml:"title"`
	Tags     []string `yaml:"tags"`
	Extended string   `yaml:"extended"`
}

// Execute implements the go-flags Commander interface for EditCommand.
func (c *EditCommand) Execute(args []string) error {
	store, db, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store)
}

// executeWithStore runs edit against a provided store (for testing).
func (c *EditCommand) executeWithStore(store *storage.SQLiteStore) error {
	ctx := context.Background()

	entries, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	entry, err := bookmark.Resolve(entries, c.Args.ID)
	if err != nil {
		return err
	}

	doc := editableEntry{
		URL:      entry.URL,
		Title:    entry.Title,
		Tags:     entry.Tags,
		Extended: entry.Extended,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	tmp, err := os.CreateTemp("", "linkpad-edit-*.yml")
	if err != nil {
		return fmt.Errorf("create scratch file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write scratch file: %w", err)
	}
	tmp.Close()

	edit := c.editFile
	if edit == nil {
		edit = func(path string) error { return launchEditor(c.globals, path) }
	}
	if err := edit(tmp.Name()); err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return fmt.Errorf("read scratch file: %w", err)
	}

	var updated editableEntry
	if err := yaml.Unmarshal(edited, &updated); err != nil {
		return fmt.Errorf("parse edited entry: %w", err)
	}

	entry.URL = updated.URL
	entry.Title = updated.Title
	entry.Tags = updated.Tags
	entry.Extended = updated.Extended
	entry.Normalize()

	if err := store.Update(ctx, entry); err != nil {
		return fmt.Errorf("update entry: %w", err)
	}

	fmt.Printf("Updated %s\n", entry.ShortID())
	return nil
}

// launchEditor runs the configured editor (config > $EDITOR > vi) attached
// to the terminal.
func launchEditor(globals *GlobalFlags, path string) error {
	editor := loadConfig(globals).Editor.Command
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
