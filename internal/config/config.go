package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"mandiprices/internal/errors"
)

// Defaults for the data.gov.in mandi price resource.
const (
	DefaultBaseURL    = "https://api.data.gov.in/resource/35985678-0d79-46b4-9ed6-6f13308a1d24"
	DefaultFormat     = "xml"
	DefaultOutputFile = "mandi_prices_data_gov_in.xlsx"
)

// Config represents the complete application configuration
type Config struct {
	Source  SourceConfig
	Export  ExportConfig
	Server  ServerConfig
	Logging LoggingConfig
}

// SourceConfig holds upstream API settings
type SourceConfig struct {
	BaseURL string
	APIKey  string
	Format  string
	// Timeout of zero leaves the HTTP client without a deadline.
	Timeout time.Duration
	Limit   int
}

// ExportConfig holds spreadsheet output settings
type ExportConfig struct {
	OutputFile string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	sourceConfig, err := loadSourceConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load source configuration")
	}
	config.Source = *sourceConfig

	config.Export = *loadExportConfig()
	config.Server = *loadServerConfig()
	config.Logging = LoadLogging()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadSourceConfig() (*SourceConfig, error) {
	apiKey := strings.TrimSpace(os.Getenv("DATA_GOV_API_KEY"))
	if apiKey == "" {
		return nil, errors.ConfigInvalid("DATA_GOV_API_KEY is required")
	}

	return &SourceConfig{
		BaseURL: getEnvOrDefault("MANDI_BASE_URL", DefaultBaseURL),
		APIKey:  apiKey,
		Format:  strings.ToLower(getEnvOrDefault("MANDI_FORMAT", DefaultFormat)),
		Timeout: getEnvDurationOrDefault("HTTP_TIMEOUT", 0),
		Limit:   getEnvIntOrDefault("MANDI_LIMIT", 0),
	}, nil
}

func loadExportConfig() *ExportConfig {
	return &ExportConfig{
		OutputFile: getEnvOrDefault("MANDI_OUTPUT", DefaultOutputFile),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

// LoadLogging reads the logger settings alone. Commands that never reach
// the upstream API use it without needing an API key.
func LoadLogging() LoggingConfig {
	return LoggingConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
}

func validateConfig(config *Config) error {
	if config.Source.BaseURL == "" {
		return errors.ConfigInvalid("base URL is required")
	}
	if config.Source.Format != "xml" && config.Source.Format != "json" {
		return errors.ConfigInvalid("MANDI_FORMAT must be xml or json")
	}
	if config.Source.Limit < 0 {
		return errors.ConfigInvalid("MANDI_LIMIT cannot be negative")
	}
	if config.Source.Timeout < 0 {
		return errors.ConfigInvalid("HTTP_TIMEOUT cannot be negative")
	}
	if config.Export.OutputFile == "" {
		return errors.ConfigInvalid("output file is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
