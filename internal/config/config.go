// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds the HTTP server configuration read from the
// environment. DatabaseURL is required; everything else has defaults.
type ServerConfig struct {
	Port            string
	DatabaseURL     string
	ExportTimeoutMS int  // headless capture timeout in milliseconds
	Verbose         bool // print detailed debug information
}

// NewServerConfig creates a server configuration from environment variables.
// It reads PORT (default: 8080), DATABASE_URL (required),
// EXPORT_TIMEOUT_MS (default: 60000) and VERBOSE.
func NewServerConfig() (*ServerConfig, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // default
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	timeoutStr := os.Getenv("EXPORT_TIMEOUT_MS")
	if timeoutStr == "" {
		timeoutStr = "60000" // default
	}
	timeoutMS, err := strconv.Atoi(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_TIMEOUT_MS: %v", err)
	}

	config := &ServerConfig{
		Port:            port,
		DatabaseURL:     databaseURL,
		ExportTimeoutMS: timeoutMS,
		Verbose:         os.Getenv("VERBOSE") == "true" || os.Getenv("VERBOSE") == "1",
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT: %s", c.Port)
	}
	if c.ExportTimeoutMS < 1000 {
		return fmt.Errorf("EXPORT_TIMEOUT_MS must be at least 1000, got: %d", c.ExportTimeoutMS)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}
