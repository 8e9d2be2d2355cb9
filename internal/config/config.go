package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// It is built once in main and injected — no package reads ambient env state.
type Config struct {
	// Billogram API
	APIUser     string `mapstructure:"API_USER"`
	APIPassword string `mapstructure:"API_PASSWORD"`
	APIBase     string `mapstructure:"BILLOGRAM_API_BASE"`

	// Input
	InvoicesCSV string `mapstructure:"INVOICES_CSV"`

	// Runtime
	Env                string `mapstructure:"APP_ENV"` // development | production
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("BILLOGRAM_API_BASE", "https://sandbox.billogram.com/api/v2")
	viper.SetDefault("INVOICES_CSV", "invoices.csv")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 30)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequireAPICredentials verifies both secrets are present. Commands that
// talk to the API call this; offline validation does not.
func (c *Config) RequireAPICredentials() error {
	if c.APIUser == "" || c.APIPassword == "" {
		return errors.New("API_USER and API_PASSWORD must be set")
	}
	return nil
}
