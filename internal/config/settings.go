package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds frontend bundler settings.
type SiteConfig struct {
	Dir       string `yaml:"dir"`        // frontend project directory (bundler working dir)
	OutputDir string `yaml:"output_dir"` // where the built site and data artifacts go
	Bundler   string `yaml:"bundler"`    // bundler command line, split on whitespace
}

// ServeConfig holds local preview server settings.
type ServeConfig struct {
	Port int `yaml:"port"`
}

// Settings represents global application settings.
// This corresponds to ~/.trajview/settings.yaml.
type Settings struct {
	Version int         `yaml:"version"`
	Site    SiteConfig  `yaml:"site"`
	Serve   ServeConfig `yaml:"serve"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Site: SiteConfig{
			Dir:       ".",
			OutputDir: "dist",
			Bundler:   "npm run build",
		},
		Serve: ServeConfig{
			Port: 8050,
		},
	}
}

// normalize fills in zero-value fields left out of a hand-edited settings file.
func (s *Settings) normalize() {
	defaults := NewSettings()
	if s.Version == 0 {
		s.Version = defaults.Version
	}
	if s.Site.Dir == "" {
		s.Site.Dir = defaults.Site.Dir
	}
	if s.Site.OutputDir == "" {
		s.Site.OutputDir = defaults.Site.OutputDir
	}
	if s.Site.Bundler == "" {
		s.Site.Bundler = defaults.Site.Bundler
	}
	if s.Serve.Port == 0 {
		s.Serve.Port = defaults.Serve.Port
	}
}

// LoadSettings loads the global settings from ~/.trajview/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	if !FileExists(path) {
		return NewSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings from %s: %w", path, err)
	}
	settings.normalize()
	return &settings, nil
}

// SaveSettings saves the global settings to ~/.trajview/settings.yaml.
func SaveSettings(settings *Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}
