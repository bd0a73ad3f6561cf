package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/linkpad/config.yaml"

// Config holds all linkpad configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Editor  EditorConfig  `yaml:"editor"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig locates the bookmark databases. Each named database lives
// in its own directory under Path, so separate catalogs (work, home, ...)
// stay independent.
type StorageConfig struct {
	Path              string `yaml:"path"`
	DefaultDatabase   string `yaml:"default_database"`
	SQLiteFile        string `yaml:"sqlite_file"`
	SQLiteJournalMode string `yaml:"sqlite_journal_mode"`
}

// FetchConfig controls webpage title fetching for add/update.
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

// EditorConfig controls the edit command. An empty Command falls back to
// $EDITOR, then vi.
type EditorConfig struct {
	Command string `yaml:"command"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// DatabaseRoot resolves the directory holding all named databases.
func (c *Config) DatabaseRoot() (string, error) {
	return ExpandPath(c.Storage.Path)
}

// DatabasePathFor resolves the absolute SQLite file path of a named
// database: <root>/<name>/<sqlite_file>.
func (c *Config) DatabasePathFor(name string) (string, error) {
	root, err := c.DatabaseRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name, c.Storage.SQLiteFile), nil
}

// DatabasePath resolves the SQLite file path of the default database.
func (c *Config) DatabasePath() (string, error) {
	return c.DatabasePathFor(c.Storage.DefaultDatabase)
}
