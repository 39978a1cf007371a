// Package config provides configuration file parsing for venvman.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings loaded from {dir}/config.yaml. All
// fields are optional; zero values select the built-in defaults.
type Config struct {
	// DataDir overrides where venvman keeps its database, environments and
	// lockfiles. Defaults to ~/.venvman.
	DataDir string `yaml:"data_dir"`

	// DefaultPython is the Python version used when `venvman create` is
	// invoked without --python.
	DefaultPython string `yaml:"default_python"`

	// UnusedThresholdDays configures how many days without an activation
	// classify an environment as unused. Defaults to 30.
	UnusedThresholdDays int `yaml:"unused_threshold_days"`
}

// Dir returns the venvman config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/venvman if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "venvman"), nil
}

// Load reads the config file at {dir}/config.yaml. If the file does not
// exist, a zero Config is returned without an error.
func Load(dir string) (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// ResolveDataDir returns the effective data directory: the configured
// override, or ~/.venvman.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".venvman"), nil
}
