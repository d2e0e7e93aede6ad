// Package config holds rowkit's YAML-backed configuration with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all rowkit configuration.
type Config struct {
	// DefaultFormat is the input format assumed when detection by file
	// extension fails. Empty means detection failures are errors.
	DefaultFormat string `yaml:"default_format"`

	// DefaultOutput is the output format used when none is requested.
	DefaultOutput string `yaml:"default_output"`

	Sort    SortConfig    `yaml:"sort"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// SortConfig configures the default sort behavior.
type SortConfig struct {
	// Spec is a sort spec like "name,age:desc" applied when the command
	// line gives none.
	Spec string `yaml:"spec"`
	// ScriptPath points at a Go snippet defining a custom Less function.
	// When set it takes precedence over Spec.
	ScriptPath string `yaml:"script_path"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// DebounceMS is how long to coalesce rapid file events, in
	// milliseconds.
	DebounceMS int `yaml:"debounce_ms"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug/info/warn/error
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		DefaultOutput: "json",
		Watch:         WatchConfig{DebounceMS: 500},
		Logging:       LoggingConfig{Level: "info", JSON: true},
	}
}

// Load reads the config file at path and applies environment overrides.
// A missing file returns defaults, not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("config: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over file contents.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ROWKIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ROWKIT_FORMAT"); v != "" {
		c.DefaultFormat = v
	}
	if v := os.Getenv("ROWKIT_OUTPUT"); v != "" {
		c.DefaultOutput = v
	}
}
