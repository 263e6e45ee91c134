package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name searched for in the working and config directories.
const FileName = "oxy-view.yaml"

// Load returns the defaults overlaid with a config file. An explicit path must exist;
// otherwise the first of ./oxy-view.yaml and ConfigDir()/oxy-view.yaml is used, if any.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "oxy-view")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "oxy-view")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "oxy-view")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "oxy-view")
	}
}

// loadFromFile merges a YAML file into cfg. Keys absent from the file keep their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// SaveTo writes the config to a specific path, creating parent directories as needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
