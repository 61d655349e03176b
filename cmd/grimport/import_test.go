package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"grimport/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with the given args and returns the
// combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// writeTestConfig points the candidate list at destDir so imports resolve
// there without touching the real filesystem layout.
func writeTestConfig(t *testing.T, destDir string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "import:\n  candidates:\n    - " + destDir + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestImportCommand(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	configPath := writeTestConfig(t, destDir)

	for name, content := range map[string]string{
		"i_script.py":    "script",
		"i_dr_import.py": "import script",
		"__init__.py":    "",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(srcDir, name), []byte(content), 0644))
	}

	t.Run("print mode lists without copying", func(t *testing.T) {
		output, err := runCommand(t, "--config", configPath, "import", "-p", srcDir)
		require.NoError(t, err)

		assert.Contains(t, output, "i_script.py")
		assert.Contains(t, output, "i_dr_import.py")
		assert.NotContains(t, output, "__init__.py")

		entries, err := os.ReadDir(destDir)
		require.NoError(t, err)
		assert.Empty(t, entries, "print mode must not copy anything")
	})

	t.Run("import copies under dotted names", func(t *testing.T) {
		output, err := runCommand(t, "--config", configPath, "import", srcDir)
		require.NoError(t, err)
		assert.Contains(t, output, "Imported 2 scripts")

		for _, name := range []string{"i.script", "i.dr.import"} {
			_, err := os.Stat(filepath.Join(destDir, name))
			assert.NoError(t, err, "expected %s in the script directory", name)
		}
	})

	t.Run("existing scripts skipped without replace", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(destDir, "i.script"), []byte("pinned"), 0644))

		_, err := runCommand(t, "--config", configPath, "import", srcDir)
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(destDir, "i.script"))
		require.NoError(t, err)
		assert.Equal(t, "pinned", string(content))
	})

	t.Run("replace overwrites", func(t *testing.T) {
		_, err := runCommand(t, "--config", configPath, "import", "-r", srcDir)
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(destDir, "i.script"))
		require.NoError(t, err)
		assert.Equal(t, "script", string(content))
	})

	t.Run("dry run copies nothing", func(t *testing.T) {
		extraDir := t.TempDir()
		extraConfig := writeTestConfig(t, extraDir)

		output, err := runCommand(t, "--config", extraConfig, "import", "-n", srcDir)
		require.NoError(t, err)
		assert.Contains(t, output, "Dry run")

		entries, err := os.ReadDir(extraDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing input directory fails", func(t *testing.T) {
		_, err := runCommand(t, "--config", configPath, "import", filepath.Join(srcDir, "nope"))
		assert.Error(t, err)
	})

	t.Run("no matches exits cleanly", func(t *testing.T) {
		emptyDir := t.TempDir()
		output, err := runCommand(t, "--config", configPath, "import", emptyDir)
		require.NoError(t, err)
		assert.Contains(t, output, "No matching files detected")
	})

	t.Run("unresolvable destination fails", func(t *testing.T) {
		missing := filepath.Join(srcDir, "no-such-candidate")
		badConfig := writeTestConfig(t, missing)

		_, err := runCommand(t, "--config", badConfig, "import", srcDir)
		assert.Error(t, err)
	})
}

func TestListCommand(t *testing.T) {
	srcDir := t.TempDir()
	configPath := writeTestConfig(t, t.TempDir())

	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "i_script.py"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "test_db.py"), []byte("x"), 0644))

	output, err := runCommand(t, "--config", configPath, "list", "--exclude", "test_*.py", srcDir)
	require.NoError(t, err)
	assert.Contains(t, output, "i_script.py")
	assert.NotContains(t, output, "test_db.py")
}

func TestSetupCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	output, err := runCommand(t, "--config", configPath, "setup",
		"--export-path", "/opt/grass/scripts", "--pattern", "i_.*", "-r")
	require.NoError(t, err)
	assert.Contains(t, output, configPath)

	saved, err := config.LoadConfigFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/opt/grass/scripts", saved.Import.ExportPath)
	assert.Equal(t, "i_.*", saved.Import.Pattern)
	assert.True(t, saved.Settings.Replace)

	t.Run("invalid pattern rejected", func(t *testing.T) {
		_, err := runCommand(t, "--config", configPath, "setup", "--pattern", "i_[.*")
		assert.Error(t, err)
	})
}

func TestPathsCommand(t *testing.T) {
	destDir := t.TempDir()
	configPath := writeTestConfig(t, destDir)

	output, err := runCommand(t, "--config", configPath, "paths")
	require.NoError(t, err)
	assert.Contains(t, output, destDir)
	assert.Contains(t, output, "present")
}
