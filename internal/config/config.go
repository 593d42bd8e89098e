// Package config loads and saves the application configuration.
package config

import (
	"os"
	"path/filepath"

	"projman/internal/models"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config holds user-facing settings.
type Config struct {
	// SortBy selects the secondary project sort key: "name" or "recency".
	SortBy models.SortBy `yaml:"sort_by"`
	// OpenBehavior controls window reuse when opening a project.
	OpenBehavior models.OpenBehavior `yaml:"open_behavior"`
	// ShowStatusBar toggles the status bar at the bottom of the UI.
	ShowStatusBar bool `yaml:"show_status_bar"`
	// ScanPaths overrides the conventional project directories to scan.
	ScanPaths []string `yaml:"scan_paths,omitempty"`
	// Editor picks the editor to launch: "auto", "code", "cursor", "zed".
	Editor string `yaml:"editor"`
	// Terminal is the terminal emulator command for open-in-terminal.
	Terminal string `yaml:"terminal,omitempty"`

	FirstRun bool `yaml:"-"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		SortBy:        models.SortByName,
		OpenBehavior:  models.OpenCurrentWindow,
		ShowStatusBar: true,
		Editor:        "auto",
		FirstRun:      true,
	}
}

// Path returns the config file location.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "projman", configFileName)
}

// Load reads the configuration, falling back to defaults on a first run.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	cfg.FirstRun = false
	if cfg.SortBy != models.SortByRecency {
		cfg.SortBy = models.SortByName
	}
	return cfg, nil
}

// Save writes the configuration to its default location.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
