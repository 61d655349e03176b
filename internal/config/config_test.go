package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := New()

	assert.Equal(t, ".py", cfg.Import.Extension)
	assert.Contains(t, cfg.Import.Exclusions, "__init__.py")
	assert.Contains(t, cfg.Import.Exclusions, "setup.py")
	assert.NotEmpty(t, cfg.Import.Candidates)
	assert.False(t, cfg.Settings.Replace)
	assert.False(t, cfg.Settings.DryRun)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadConfigFile(filepath.Join(tmpDir, "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, ".py", cfg.Import.Extension)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		content := `
import:
  export_path: /opt/grass/scripts
  pattern: "i_.*"
  exclusions:
    - "__init__.py"
    - "test_*.py"
settings:
  replace: true
`
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

		cfg, err := LoadConfigFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "/opt/grass/scripts", cfg.Import.ExportPath)
		assert.Equal(t, "i_.*", cfg.Import.Pattern)
		assert.Equal(t, []string{"__init__.py", "test_*.py"}, cfg.Import.Exclusions)
		assert.True(t, cfg.Settings.Replace)

		// Unset fields keep their defaults
		assert.Equal(t, ".py", cfg.Import.Extension)
		assert.NotEmpty(t, cfg.Import.Candidates)
	})

	t.Run("invalid pattern rejected", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "bad.yaml")
		content := `
import:
  pattern: "i_[.*"
`
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

		_, err := LoadConfigFile(configPath)
		assert.Error(t, err)
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "broken.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(":\n\t- not yaml"), 0644))

		_, err := LoadConfigFile(configPath)
		assert.Error(t, err)
	})
}

func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := New()
	cfg.Import.ExportPath = "/opt/grass/scripts"
	cfg.Settings.Replace = true

	require.NoError(t, SaveConfig(cfg, configPath))

	loaded, err := LoadConfigFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/opt/grass/scripts", loaded.Import.ExportPath)
	assert.True(t, loaded.Settings.Replace)
}

func TestValidate(t *testing.T) {
	t.Run("extension must start with dot", func(t *testing.T) {
		cfg := New()
		cfg.Import.Extension = "py"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty exclusion rejected", func(t *testing.T) {
		cfg := New()
		cfg.Import.Exclusions = []string{""}
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty candidate rejected", func(t *testing.T) {
		cfg := New()
		cfg.Import.Candidates = []string{"/usr/lib/grass74/scripts", ""}
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative debounce rejected", func(t *testing.T) {
		cfg := New()
		cfg.WatchMode.Debounce = -1
		assert.Error(t, cfg.Validate())
	})
}
