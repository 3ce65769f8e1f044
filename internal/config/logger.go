package config

import (
	"fmt"
	"strings"
)

// Log output destinations that are not file paths.
const (
	LogOutputStdout = "stdout"
	LogOutputStderr = "stderr"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is the logging level (debug, info, warn, error).
	Level string
	// Format is the logging format (json, console).
	Format string
	// Output is stdout, stderr or a log file path.
	Output string
}

// LoadLoggerConfigFromEnv loads logger configuration from environment variables.
// Level and format are case-insensitive.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:  strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		Format: strings.ToLower(GetEnv("LOG_FORMAT", "json")),
		Output: GetEnv("LOG_OUTPUT", LogOutputStdout),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	if !contains(logLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (must be: %s)", c.Level, strings.Join(logLevels, ", "))
	}
	if !contains(logFormats, c.Format) {
		return fmt.Errorf("invalid log format: %s (must be: %s)", c.Format, strings.Join(logFormats, ", "))
	}
	return nil
}

// IsProduction returns true if logger is configured for production.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}

// IsFileOutput reports whether logs go to a file rather than a standard stream.
func (c LoggerConfig) IsFileOutput() bool {
	return c.Output != "" && c.Output != LogOutputStdout && c.Output != LogOutputStderr
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
