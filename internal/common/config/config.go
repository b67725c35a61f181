// Package config provides configuration management for ventanilla.
// It supports loading configuration from environment variables, config files, and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/AndresDRamos/sqlite-EZI/internal/common/logger"
	"github.com/AndresDRamos/sqlite-EZI/internal/common/tracing"
	"github.com/AndresDRamos/sqlite-EZI/internal/db"
)

// Config holds all configuration sections.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Tracing  tracing.Config `mapstructure:"tracing"`
}

// DatabaseConfig holds the store selection inputs.
type DatabaseConfig struct {
	// Environment is the mode indicator (NODE_ENV).
	Environment string `mapstructure:"environment"`
	// URL is the PostgreSQL connection URI (DATABASE_URL, then POSTGRES_URL).
	// Only consulted in production mode.
	URL string `mapstructure:"url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"outputPath"`
}

// Mode classifies Environment the same way the selector does.
func (d *DatabaseConfig) Mode() db.Mode {
	return db.ParseMode(d.Environment)
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.environment", "")
	v.SetDefault("database.url", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", logger.DetectFormat())
	// stdout carries command output.
	v.SetDefault("logging.outputPath", "stderr")

	// Empty endpoint keeps tracing disabled.
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.serviceName", "ventanilla")
	v.SetDefault("tracing.insecure", true)
}

// Load reads configuration from environment variables, config file, and defaults.
func Load() (*Config, error) {
	return LoadWithPath("")
}

// LoadWithPath reads configuration from the specified path or default locations.
// Config file should be named config.yaml and placed in the given path, the
// current directory or /etc/ventanilla/.
func LoadWithPath(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("VENTANILLA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The database inputs keep their conventional unprefixed names.
	_ = v.BindEnv("database.environment", db.EnvIndicator)
	_ = v.BindEnv("database.url", db.EnvDatabaseURL, "POSTGRES_URL")
	_ = v.BindEnv("logging.outputPath", "VENTANILLA_LOGGING_OUTPUT_PATH")
	_ = v.BindEnv("tracing.endpoint", "VENTANILLA_TRACING_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("tracing.serviceName", "VENTANILLA_TRACING_SERVICE_NAME", "OTEL_SERVICE_NAME")

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/ventanilla/")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate checks the logging section. A missing production URL is not
// rejected here; it surfaces when a connection is acquired.
func validate(cfg *Config) error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, "logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		errs = append(errs, "logging.format must be one of: json, text, console")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}

	return nil
}
