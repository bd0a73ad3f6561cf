package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config   string `long:"config" description:"Path to config file" default:""`
	Database string `long:"db" env:"LINKPAD_DBNAME" description:"Database name (directory under the storage root)"`
	DBPath   string `long:"db-path" description:"Override database file path"`
	JSON     bool   `long:"json" description:"Output in JSON format"`
	Verbose  bool   `long:"verbose" description:"Enable verbose output"`
	Version  bool   `long:"version" description:"Show version and exit"`
}

// AddCommand — add a new bookmark to the database.
type AddCommand struct {
	Title    string   `long:"title" description:"Title. Fetched from the webpage when omitted"`
	Tags     []string `long:"tag" short:"t" description:"Tag to attach (repeatable)"`
	Extended string   `long:"extended" description:"Extended comment text"`
	NoFetch  bool     `long:"no-fetch" description:"Never fetch the webpage title"`

	Args struct {
		URL string `positional-arg-name:"URL" required:"yes" description:"URL to bookmark"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// ListCommand — list entries matching a search query.
type ListCommand struct {
	Sort  string `long:"sort" short:"s" description:"Sort by entry field: id | url | title | created" choice:"id" choice:"url" choice:"title" choice:"created"`
	Limit int    `long:"limit" short:"n" description:"Maximum entries to print (0 = all)"`

	Args struct {
		Terms []string `positional-arg-name:"TERM" description:"Search terms ([+|-][scope:]value)"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// ShowCommand — print the full contents of a single entry.
type ShowCommand struct {
	Format string `long:"format" description:"Output format: full | url | json" default:"full"`

	Args struct {
		ID string `positional-arg-name:"ID" required:"yes" description:"Entry id or short-id prefix"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// EditCommand — edit an entry with $EDITOR via a YAML scratch file.
type EditCommand struct {
	Args struct {
		ID string `positional-arg-name:"ID" required:"yes" description:"Entry id or short-id prefix"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string

	// editFile is invoked with the scratch file path; nil launches the
	// configured editor. Injectable for testing.
	editFile func(path string) error
}

// RemoveCommand — delete entries by id.
type RemoveCommand struct {
	Force bool `long:"force" short:"f" description:"Skip confirmation prompt"`

	Args struct {
		IDs []string `positional-arg-name:"ID" required:"1" description:"Entry ids or short-id prefixes"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// TagsCommand — list all tags with usage counts.
type TagsCommand struct {
	globals *GlobalFlags
	version string
}

// UpdateCommand — refetch webpage titles for matched entries.
type UpdateCommand struct {
	DryRun bool `long:"dry-run" description:"Show what would change without writing"`

	Args struct {
		Terms []string `positional-arg-name:"TERM" description:"Search terms ([+|-][scope:]value)"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show aggregate statistics about the current database.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// DatabaseCommand groups the named-database management subcommands.
// Databases are directories under the storage root, each holding its own
// SQLite file; the active one comes from --db, $LINKPAD_DBNAME, or config.
type DatabaseCommand struct {
	globals *GlobalFlags
	version string
}

// DatabaseNameCommand — print the name of the active database.
type DatabaseNameCommand struct {
	globals *GlobalFlags
	version string
}

// DatabaseListCommand — list all databases under the storage root.
type DatabaseListCommand struct {
	globals *GlobalFlags
	version string
}

// DatabaseCreateCommand — create and initialize a new named database.
type DatabaseCreateCommand struct {
	Args struct {
		Name string `positional-arg-name:"NAME" required:"yes" description:"Database name"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}

// DatabaseEnvCommand — print shell export lines selecting the active database.
type DatabaseEnvCommand struct {
	globals *GlobalFlags
	version string
}

// ExportCommand — dump all entries as YAML to stdout.
type ExportCommand struct {
	globals *GlobalFlags
	version string
}

// ImportCommand — add entries from a YAML export file.
type ImportCommand struct {
	Args struct {
		File string `positional-arg-name:"FILE" required:"yes" description:"YAML export file"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
}
