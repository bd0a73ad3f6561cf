package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runnerr0/linkpad/internal/storage"
)

// Execute implements the go-flags Commander interface for DatabaseNameCommand.
func (c *DatabaseNameCommand) Execute(args []string) error {
	cfg := loadConfig(c.globals)
	fmt.Println(resolveDatabaseName(c.globals, cfg))
	return nil
}

// Execute implements the go-flags Commander interface for DatabaseListCommand.
func (c *DatabaseListCommand) Execute(args []string) error {
	cfg := loadConfig(c.globals)
	root, err := cfg.DatabaseRoot()
	if err != nil {
		return err
	}

	var names []string
	dirents, err := os.ReadDir(root)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read storage root: %w", err)
	}
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		// A directory counts as a database once its SQLite file exists.
		if _, err := os.Stat(filepath.Join(root, d.Name(), cfg.Storage.SQLiteFile)); err == nil {
			names = append(names, d.Name())
		}
	}

	if c.globals != nil && c.globals.JSON {
		if names == nil {
			names = []string{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	}

	if len(names) == 0 {
		fmt.Println("No databases")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// Execute implements the go-flags Commander interface for DatabaseCreateCommand.
func (c *DatabaseCreateCommand) Execute(args []string) error {
	name := c.Args.Name
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid database name %q", name)
	}

	cfg := loadConfig(c.globals)
	dbPath, err := cfg.DatabasePathFor(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(dbPath); err == nil {
		return fmt.Errorf("database %q already exists", name)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	fmt.Printf("Created database %s\n", name)
	return nil
}

// Execute implements the go-flags Commander interface for DatabaseEnvCommand.
func (c *DatabaseEnvCommand) Execute(args []string) error {
	cfg := loadConfig(c.globals)
	fmt.Printf("export LINKPAD_DBNAME=%s\n", resolveDatabaseName(c.globals, cfg))
	return nil
}
