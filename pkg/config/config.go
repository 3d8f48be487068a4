// Package config loads runtime settings from environment variables and an
// optional config file. Persisted CLI state (active project, stored API key)
// lives in internal/config instead.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
	Data   DataConfig   `mapstructure:"data"`
	Server ServerConfig `mapstructure:"server"`

	// Currency symbol used in prompts and rendered amounts.
	Currency string `mapstructure:"currency"`
}

// GeminiConfig represents the generative API configuration
type GeminiConfig struct {
	// APIKey read from the environment; an empty value falls back to the
	// keyring and then the config file.
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// DataConfig represents local storage configuration
type DataConfig struct {
	// Dir overrides the default key-value store location (~/.giftwise/data).
	Dir string `mapstructure:"dir"`
}

// ServerConfig represents the optional REST server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// A .env next to the binary is optional.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.giftwise")

	viper.SetDefault("gemini.model", "gemini-2.5-flash-preview-09-2025")
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("currency", "£")
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)

	viper.SetEnvPrefix("giftwise")
	viper.AutomaticEnv()
	_ = viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	_ = viper.BindEnv("gemini.model", "GEMINI_MODEL")
	_ = viper.BindEnv("data.dir", "GIFTWISE_DATA_DIR")

	if err := viper.ReadInConfig(); err != nil {
		// Defaults and env vars cover the no-file case.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}
