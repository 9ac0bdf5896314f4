// Package config persists command line defaults between runs
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/easyeda2kicad/internal/logging"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/convert"
	"github.com/OpenTraceLab/easyeda2kicad/pkg/kicad/renderer"
)

// EnvPath overrides the config file location
const EnvPath = "EASYEDA2KICAD_CONFIG"

// AppConfig stores persistent settings. Zero values mean "use the built-in default".
type AppConfig struct {
	Logging         logging.Config `json:"logging"`
	ModelsDir       string         `json:"models_dir,omitempty"`
	DefaultLayer    string         `json:"default_layer,omitempty"`
	CourtyardMargin *float64       `json:"courtyard_margin,omitempty"`
	NoCourtyard     bool           `json:"no_courtyard,omitempty"`
	ColorTheme      int            `json:"color_theme"` // renderer.ColorTheme, stored as int for JSON compatibility
}

// Default returns the configuration used when no file exists
func Default() *AppConfig {
	return &AppConfig{
		Logging:    logging.DefaultConfig(),
		ColorTheme: int(renderer.ThemeClassic),
	}
}

// Path returns the config file location
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}

	var configDir string
	if appData := os.Getenv("APPDATA"); appData != "" {
		// Windows: %APPDATA%\easyeda2kicad
		configDir = filepath.Join(appData, "easyeda2kicad")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config", "easyeda2kicad")
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the config from its default location
func Load() (*AppConfig, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields the defaults.
func LoadFrom(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to its default location
func Save(cfg *AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the config to path, creating the directory if needed
func SaveTo(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply copies persisted defaults into a conversion config
func (c *AppConfig) Apply(cfg *convert.Config) {
	if c.DefaultLayer != "" {
		cfg.DefaultLayer = c.DefaultLayer
	}
	if c.CourtyardMargin != nil {
		cfg.CourtyardMargin = *c.CourtyardMargin
	}
	if c.NoCourtyard {
		cfg.Courtyard = false
	}
}

// Theme returns the preview colour theme
func (c *AppConfig) Theme() renderer.ColorTheme {
	theme := renderer.ColorTheme(c.ColorTheme)
	if _, ok := renderer.ThemeNames[theme]; !ok {
		return renderer.ThemeClassic
	}
	return theme
}
