package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDir   = ".kindlebundle"
	defaultTargetWords = 20000
)

// Embedded default configuration, written out on first run.
//
//go:embed config/settings.yaml
var defaultSettings string

// Settings represents the YAML configuration structure. Every component
// receives the struct explicitly; there are no package-level path or target
// constants to swap out for tests.
type Settings struct {
	InboxDir    string `yaml:"inbox_directory"`
	ArchiveDir  string `yaml:"archive_directory"`
	OutputDir   string `yaml:"output_directory"`
	TargetWords int    `yaml:"target_words"`
	Tools       struct {
		Pandoc      string `yaml:"pandoc"`
		CalibreSMTP string `yaml:"calibre_smtp"`
	} `yaml:"tools"`
	Send struct {
		Relay string `yaml:"relay"`
		Port  int    `yaml:"port"`
		User  string `yaml:"user"`
		From  string `yaml:"from"`
		To    string `yaml:"to"`
	} `yaml:"send"`
}

// LoadSettings loads settings from the default location, writing the
// embedded defaults there first when missing.
func LoadSettings() (*Settings, error) {
	if err := ensureConfigExists(); err != nil {
		return nil, fmt.Errorf("ensuring config files exist: %w", err)
	}
	return loadSettings(getConfigPath("settings.yaml"))
}

// loadSettings loads and validates a settings file.
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("reading settings file %s: %w", settingsPath, err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	if settings.TargetWords <= 0 {
		log.Printf("Warning: target_words is %d, defaulting to %d", settings.TargetWords, defaultTargetWords)
		settings.TargetWords = defaultTargetWords
	}
	if settings.InboxDir == "" {
		return nil, fmt.Errorf("settings: inbox_directory is required")
	}
	if settings.ArchiveDir == "" {
		return nil, fmt.Errorf("settings: archive_directory is required")
	}
	if settings.OutputDir == "" {
		settings.OutputDir = "."
	}
	if settings.Tools.Pandoc == "" {
		settings.Tools.Pandoc = "pandoc"
	}
	if settings.Tools.CalibreSMTP == "" {
		settings.Tools.CalibreSMTP = "calibre-smtp"
	}

	return &settings, nil
}

// getConfigPath returns the path to a config file in the dot directory.
func getConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// ensureConfigExists creates the config directory and writes the default
// settings file if it doesn't exist.
func ensureConfigExists() error {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settingsPath := getConfigPath("settings.yaml")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := os.WriteFile(settingsPath, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return nil
}
