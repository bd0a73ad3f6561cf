package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDBGlobals writes a config file pointing the storage root at a temp
// directory and returns globals wired to it.
func newTestDBGlobals(t *testing.T) (*GlobalFlags, string) {
	t.Helper()
	root := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfgData := fmt.Sprintf("storage:\n  path: %s\n", root)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgData), 0644))

	return &GlobalFlags{Config: cfgPath}, root
}

func TestDatabaseName_Default(t *testing.T) {
	globals, _ := newTestDBGlobals(t)

	cmd := &DatabaseNameCommand{globals: globals}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Equal(t, "default\n", output)
}

func TestDatabaseName_FlagOverride(t *testing.T) {
	globals, _ := newTestDBGlobals(t)
	globals.Database = "work"

	cmd := &DatabaseNameCommand{globals: globals}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Equal(t, "work\n", output)
}

func TestDatabaseCreate_ThenList(t *testing.T) {
	globals, root := newTestDBGlobals(t)

	create := &DatabaseCreateCommand{globals: globals}
	create.Args.Name = "work"
	output := captureOutput(t, func() {
		require.NoError(t, create.Execute(nil))
	})
	assert.Contains(t, output, "Created database work")

	// The SQLite file exists and carries the migrated schema.
	_, err := os.Stat(filepath.Join(root, "work", "linkpad.db"))
	require.NoError(t, err)

	list := &DatabaseListCommand{globals: globals}
	output = captureOutput(t, func() {
		require.NoError(t, list.Execute(nil))
	})
	assert.Equal(t, "work\n", output)
}

func TestDatabaseCreate_AlreadyExists(t *testing.T) {
	globals, _ := newTestDBGlobals(t)

	create := &DatabaseCreateCommand{globals: globals}
	create.Args.Name = "work"
	captureOutput(t, func() {
		require.NoError(t, create.Execute(nil))
	})

	err := create.Execute(nil)
	assert.ErrorContains(t, err, "already exists")
}

func TestDatabaseCreate_InvalidName(t *testing.T) {
	globals, _ := newTestDBGlobals(t)

	for _, name := range []string{"a/b", `a\b`, ".", ".."} {
		cmd := &DatabaseCreateCommand{globals: globals}
		cmd.Args.Name = name
		err := cmd.Execute(nil)
		assert.ErrorContains(t, err, "invalid database name", "name %q", name)
	}
}

func TestDatabaseList_Empty(t *testing.T) {
	globals, _ := newTestDBGlobals(t)

	cmd := &DatabaseListCommand{globals: globals}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Equal(t, "No databases\n", output)
}

func TestDatabaseList_JSON(t *testing.T) {
	globals, _ := newTestDBGlobals(t)
	globals.JSON = true

	create := &DatabaseCreateCommand{globals: globals}
	create.Args.Name = "home"
	captureOutput(t, func() {
		require.NoError(t, create.Execute(nil))
	})

	cmd := &DatabaseListCommand{globals: globals}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	var names []string
	require.NoError(t, json.Unmarshal([]byte(output), &names))
	assert.Equal(t, []string{"home"}, names)
}

func TestDatabaseEnv(t *testing.T) {
	globals, _ := newTestDBGlobals(t)
	globals.Database = "work"

	cmd := &DatabaseEnvCommand{globals: globals}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Equal(t, "export LINKPAD_DBNAME=work\n", output)
}

func TestResolveDBPath_NamedDatabase(t *testing.T) {
	globals, root := newTestDBGlobals(t)
	globals.Database = "work"

	path, err := resolveDBPath(globals)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "work", "linkpad.db"), path)
}

func TestResolveDBPath_FlagWins(t *testing.T) {
	globals, _ := newTestDBGlobals(t)
	globals.Database = "work"
	globals.DBPath = "/tmp/explicit.db"

	path, err := resolveDBPath(globals)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit.db", path)
}
