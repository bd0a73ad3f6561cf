package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Add            *AddCommand
	List           *ListCommand
	Show           *ShowCommand
	Edit           *EditCommand
	Remove         *RemoveCommand
	Tags           *TagsCommand
	Update         *UpdateCommand
	Status         *StatusCommand
	Database       *DatabaseCommand
	DatabaseName   *DatabaseNameCommand
	DatabaseList   *DatabaseListCommand
	DatabaseCreate *DatabaseCreateCommand
	DatabaseEnv    *DatabaseEnvCommand
	Export         *ExportCommand
	Import         *ImportCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "linkpad"
	parser.LongDescription = "A command-line bookmark catalog with a structured search query language."

	cmds := &commands{
		Add:            &AddCommand{globals: &globals, version: version},
		List:           &ListCommand{globals: &globals, version: version},
		Show:           &ShowCommand{globals: &globals, version: version},
		Edit:           &EditCommand{globals: &globals, version: version},
		Remove:         &RemoveCommand{globals: &globals, version: version},
		Tags:           &TagsCommand{globals: &globals, version: version},
		Update:         &UpdateCommand{globals: &globals, version: version},
		Status:         &StatusCommand{globals: &globals, version: version},
		Database:       &DatabaseCommand{globals: &globals, version: version},
		DatabaseName:   &DatabaseNameCommand{globals: &globals, version: version},
		DatabaseList:   &DatabaseListCommand{globals: &globals, version: version},
		DatabaseCreate: &DatabaseCreateCommand{globals: &globals, version: version},
		DatabaseEnv:    &DatabaseEnvCommand{globals: &globals, version: version},
		Export:         &ExportCommand{globals: &globals, version: version},
		Import:         &ImportCommand{globals: &globals, version: version},
	}

	parser.AddCommand("add", "Add new entry", "Add a new bookmark to the database.", cmds.Add)
	parser.AddCommand("list", "List entries", "List entries matching a search query ([+|-][scope:]value terms, AND-combined).", cmds.List)
	parser.AddCommand("show", "Show entry contents", "Print the full contents of a single entry, addressed by id or short-id prefix.", cmds.Show)
	parser.AddCommand("edit", "Edit existing entry", "Edit an existing bookmark with $EDITOR via a YAML scratch file.", cmds.Edit)
	parser.AddCommand("remove", "Remove entries", "Delete entries by id or short-id prefix.", cmds.Remove)
	parser.AddCommand("tags", "List tags", "List all tags with usage counts.", cmds.Tags)
	parser.AddCommand("update", "Refetch webpage titles", "Refetch webpage titles for entries matching a search query.", cmds.Update)
	parser.AddCommand("status", "Show database statistics", "Show aggregate statistics about the current database.", cmds.Status)
	parser.AddCommand("export", "Export entries as YAML", "Dump all entries as YAML to stdout.", cmds.Export)
	parser.AddCommand("import", "Import entries from YAML", "Add entries from a YAML export file.", cmds.Import)

	dbCmd, err := parser.AddCommand("database", "Manage databases", "Manage named bookmark databases under the storage root.", cmds.Database)
	if err == nil {
		dbCmd.AddCommand("name", "Show active database name", "Print the name of the active database.", cmds.DatabaseName)
		dbCmd.AddCommand("list", "List databases", "List all databases under the storage root.", cmds.DatabaseList)
		dbCmd.AddCommand("create", "Create a database", "Create and initialize a new named database.", cmds.DatabaseCreate)
		dbCmd.AddCommand("env", "Print shell exports", "Print shell export lines selecting the active database.", cmds.DatabaseEnv)
	}

	return parser, &globals, cmds
}

// Run is the main entry point for the linkpad CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the
// matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parsing (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("linkpad %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
