// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"strings"
)

var ginModes = []string{"debug", "release", "test"}

// Config aggregates the pipeline, read API and logger settings.
type Config struct {
	Pipeline PipelineConfig
	Server   ServerConfig
	Logger   LoggerConfig
	// GinMode is one of debug, release or test.
	GinMode string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Pipeline: LoadPipelineConfigFromEnv(),
		Server:   LoadServerConfigFromEnv(),
		Logger:   LoadLoggerConfigFromEnv(),
		GinMode:  GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline config validation failed: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	if !contains(ginModes, c.GinMode) {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: %s)", c.GinMode, strings.Join(ginModes, ", "))
	}

	return nil
}
