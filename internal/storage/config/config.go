package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory
const FileName = "config.yaml"

// Config holds global application settings
type Config struct {
	GameDir        string `yaml:"game_dir"`
	DarkTheme      bool   `yaml:"dark_theme"`
	CurrentProfile string `yaml:"current_profile"`
	Keybindings    string `yaml:"keybindings"`
}

// Load reads configuration from the given directory
func Load(fs afero.Fs, configDir string) (*Config, error) {
	cfg := &Config{
		Keybindings: "vim",
	}

	configPath := filepath.Join(configDir, FileName)
	data, err := afero.ReadFile(fs, configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // Return defaults
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Keybindings == "" {
		cfg.Keybindings = "vim"
	}

	return cfg, nil
}

// Save writes configuration to the given directory
func (c *Config) Save(fs afero.Fs, configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := fs.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	configPath := filepath.Join(configDir, FileName)
	if err := afero.WriteFile(fs, configPath, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
