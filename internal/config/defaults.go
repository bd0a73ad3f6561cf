package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:              "~/.linkpad",
			DefaultDatabase:   "default",
			SQLiteFile:        "linkpad.db",
			SQLiteJournalMode: "wal",
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 5,
			UserAgent:      "linkpad/1.0",
		},
		Editor: EditorConfig{
			Command: "",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
