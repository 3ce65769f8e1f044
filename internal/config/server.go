package config

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// ServerConfig holds configuration of the read API server.
type ServerConfig struct {
	// Host is empty to listen on all interfaces.
	Host string
	// Port is ":8080" or "8080".
	Port string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// ShutdownTimeout bounds draining in-flight requests on SIGINT or SIGTERM.
	ShutdownTimeout time.Duration
}

// LoadServerConfigFromEnv loads server configuration from environment variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:            GetEnv("SERVER_HOST", ""),
		Port:            GetEnv("SERVER_PORT", ":8080"),
		ReadTimeout:     GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    GetEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:     GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout: GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// GetAddress returns the full server address (host:port).
func (c ServerConfig) GetAddress() string {
	if c.Host == "" {
		return c.Port
	}

	port := strings.TrimPrefix(c.Port, ":")
	return net.JoinHostPort(c.Host, port)
}

// Validate validates server configuration.
func (c ServerConfig) Validate() error {
	if strings.TrimPrefix(c.Port, ":") == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"SERVER_READ_TIMEOUT", c.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", c.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", c.IdleTimeout},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			return fmt.Errorf("%s must be greater than 0", t.name)
		}
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT cannot be negative")
	}
	return nil
}
