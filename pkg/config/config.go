// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Data source: exactly one of URL or file path
	SourceURL  string
	SourceFile string

	// Reference year column to analyze; empty means the latest published year
	ReferenceYear string

	// Where the summary table is written; empty means stdout
	OutputPath string

	// Optional Postgres DSN for the normalization audit trail
	AuditDatabaseURL string

	// Fetch settings
	FetchTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		SourceURL:        getEnv("SOURCE_URL", ""),
		SourceFile:       getEnv("SOURCE_FILE", ""),
		ReferenceYear:    getEnv("REFERENCE_YEAR", ""),
		OutputPath:       getEnv("OUTPUT_PATH", ""),
		AuditDatabaseURL: getEnv("AUDIT_DATABASE_URL", ""),
		FetchTimeout:     time.Duration(getEnvAsInt("FETCH_TIMEOUT_MS", 30000)) * time.Millisecond,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.SourceURL == "" && c.SourceFile == "" {
		return errors.New("either SOURCE_URL or SOURCE_FILE is required")
	}

	if c.SourceURL != "" && c.SourceFile != "" {
		return errors.New("SOURCE_URL and SOURCE_FILE are mutually exclusive")
	}

	if c.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
