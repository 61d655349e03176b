package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the filename filter, the exclusion set, and the candidate
// script directories probed when no export path is given.
type Config struct {
	Import struct {
		ExportPath string   `yaml:"export_path"` // Explicit script directory, empty = probe candidates
		Pattern    string   `yaml:"pattern"`     // Filename regex, empty = match anything with the extension
		Extension  string   `yaml:"extension"`   // Required file extension
		Exclusions []string `yaml:"exclusions"`  // Glob patterns for filenames never imported
		Candidates []string `yaml:"candidates"`  // Ordered script directory candidates
	} `yaml:"import"`
	Settings struct {
		Replace bool `yaml:"replace"` // Overwrite already installed scripts
		DryRun  bool `yaml:"dry_run"` // Simulate copies instead of performing them
	} `yaml:"settings"`
	WatchMode struct {
		Debounce int `yaml:"debounce"` // Milliseconds to wait after a file event before importing
	} `yaml:"watch_mode"`
}

// LoadConfig loads configuration from the default location
// (~/.config/grimport/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "grimport", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	if tempCfg.Import.ExportPath != "" {
		cfg.Import.ExportPath = tempCfg.Import.ExportPath
	}
	if tempCfg.Import.Pattern != "" {
		cfg.Import.Pattern = tempCfg.Import.Pattern
	}
	if tempCfg.Import.Extension != "" {
		cfg.Import.Extension = tempCfg.Import.Extension
	}
	if len(tempCfg.Import.Exclusions) > 0 {
		cfg.Import.Exclusions = tempCfg.Import.Exclusions
	}
	if len(tempCfg.Import.Candidates) > 0 {
		cfg.Import.Candidates = tempCfg.Import.Candidates
	}

	cfg.Settings.Replace = tempCfg.Settings.Replace
	cfg.Settings.DryRun = tempCfg.Settings.DryRun

	if tempCfg.WatchMode.Debounce > 0 {
		cfg.WatchMode.Debounce = tempCfg.WatchMode.Debounce
	}

	// Validate the final configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Import.Extension = ".py"
	cfg.Import.Exclusions = []string{"__init__.py", "__version__.py", "setup.py"}
	cfg.Import.Candidates = []string{
		"/usr/lib/grass70/scripts",
		"/usr/lib/grass71/scripts",
		"/usr/lib/grass72/scripts",
		"/usr/lib/grass73/scripts",
		"/usr/lib/grass74/scripts",
	}

	cfg.Settings.Replace = false
	cfg.Settings.DryRun = false

	cfg.WatchMode.Debounce = 200

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if !strings.HasPrefix(c.Import.Extension, ".") {
		return fmt.Errorf("extension must start with a dot: %s", c.Import.Extension)
	}

	if c.Import.Pattern != "" {
		if _, err := regexp.Compile(c.Import.Pattern); err != nil {
			return fmt.Errorf("invalid filename pattern %q: %w", c.Import.Pattern, err)
		}
	}

	for i, exclusion := range c.Import.Exclusions {
		if exclusion == "" {
			return fmt.Errorf("exclusion %d: pattern is required", i)
		}
		if _, err := glob.Compile(exclusion); err != nil {
			return fmt.Errorf("exclusion %d: invalid pattern %q: %w", i, exclusion, err)
		}
	}

	for i, candidate := range c.Import.Candidates {
		if candidate == "" {
			return fmt.Errorf("candidate %d: path is required", i)
		}
	}

	if c.WatchMode.Debounce < 0 {
		return fmt.Errorf("watch debounce must be >= 0 milliseconds")
	}

	return nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
