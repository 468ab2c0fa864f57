package config

import (
	"os"
	"strconv"
	"time"

	"github.com/GhaziAlmutairii/survey-analyzerFYP/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Cleaning CleaningConfig
	Logging  LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// DataConfig holds survey data source settings
type DataConfig struct {
	File      string
	SheetName string
	Demo      bool
}

// CleaningConfig holds data cleaning settings
type CleaningConfig struct {
	ConfigPath string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   loadServerConfig(),
		Data:     loadDataConfig(),
		Cleaning: loadCleaningConfig(),
		Logging:  loadLoggingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		File:      getEnvOrDefault("SURVEY_FILE", ""),
		SheetName: getEnvOrDefault("SURVEY_SHEET", ""),
		Demo:      getEnvBoolOrDefault("DEMO_MODE", false),
	}
}

func loadCleaningConfig() CleaningConfig {
	return CleaningConfig{
		ConfigPath: getEnvOrDefault("CLEANING_CONFIG", ""),
	}
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level: getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Server.ShutdownTimeout <= 0 {
		return errors.ConfigInvalid("shutdown timeout must be positive")
	}
	if config.Data.File != "" {
		if _, err := os.Stat(config.Data.File); err != nil {
			return errors.ConfigInvalid("SURVEY_FILE does not exist: " + config.Data.File)
		}
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
