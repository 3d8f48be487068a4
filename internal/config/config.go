package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	// Config directory name
	configDir = ".giftwise"
	// Legacy config directory name (pre-rename installs)
	configDirLegacy = ".giftplanner"
	configFileName  = "config.json"
)

// Config is the persisted CLI state. The active project id lives here so the
// selection survives a restart.
type Config struct {
	APIKey          string `json:"api_key,omitempty"`
	ActiveProjectID string `json:"active_project_id"`
}

// GetConfigPath returns the path to the config file (~/.giftwise/config.json)
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir, configFileName), nil
}

func getLegacyConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirLegacy, configFileName), nil
}

// DataDir returns the default directory for the key-value store
// (~/.giftwise/data).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir, "data"), nil
}

// LoadConfig loads config from the current location, falling back to the
// legacy location. A config found only in the legacy location is migrated
// forward on a best-effort basis.
func LoadConfig() (*Config, error) {
	newPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if data, err := os.ReadFile(newPath); err == nil {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	legacyPath, err := getLegacyConfigPath()
	if err != nil {
		return nil, err
	}

	if data, err := os.ReadFile(legacyPath); err == nil {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		_ = SaveConfig(&cfg) // Best effort migration
		return &cfg, nil
	}

	// No config found, return empty
	return &Config{}, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
