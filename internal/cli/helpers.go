package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/linkpad/internal/config"
	"github.com/runnerr0/linkpad/internal/logger"
	"github.com/runnerr0/linkpad/internal/storage"
)

// loadConfig resolves the effective configuration. A broken or missing
// config file falls back to defaults rather than blocking the command.
func loadConfig(globals *GlobalFlags) *config.Config {
	if globals != nil && globals.Config != "" {
		cfg, err := config.Load(globals.Config)
		if err != nil {
			return config.DefaultConfig()
		}
		return cfg
	}

	cfg, err := config.LoadOrCreate()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// resolveDatabaseName determines the active database name.
// Priority: --db flag (or $LINKPAD_DBNAME) > config file > "default".
func resolveDatabaseName(globals *GlobalFlags, cfg *config.Config) string {
	if globals != nil && globals.Database != "" {
		return globals.Database
	}
	if cfg.Storage.DefaultDatabase != "" {
		return cfg.Storage.DefaultDatabase
	}
	return "default"
}

// resolveDBPath determines the SQLite database file path.
// Priority: --db-path flag > named database under the storage root.
func resolveDBPath(globals *GlobalFlags) (string, error) {
	if globals != nil && globals.DBPath != "" {
		return globals.DBPath, nil
	}
	cfg := loadConfig(globals)
	return cfg.DatabasePathFor(resolveDatabaseName(globals, cfg))
}

// openStore opens the linkpad database, runs migrations, and returns a
// ready-to-use store and the underlying *sql.DB.
func openStore(globals *GlobalFlags) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := resolveDBPath(globals)
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

// newLogger builds the diagnostic logger for a command invocation.
// Without --verbose everything is discarded.
func newLogger(globals *GlobalFlags) logger.Logger {
	if globals != nil && globals.Verbose {
		return logger.New("debug", true)
	}
	return logger.Nop()
}
