package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Anshumanformal/apirelay/internal/apiclient"
	"github.com/Anshumanformal/apirelay/internal/env"
)

// Defaults used when neither flags nor environment provide a value.
const (
	DefaultPort     = 3000
	DefaultEndpoint = "http://localhost:4000"
)

// Config holds the runtime configuration for the relay server.
type Config struct {
	Port     int
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:     DefaultPort,
		Endpoint: DefaultEndpoint,
		Timeout:  apiclient.DefaultTimeout,
	}
}

// ApplyEnv applies configuration from environment variables.
// It respects flags that have been explicitly set (changed map).
// Returns an error if a variable has an invalid format.
func ApplyEnv(cfg *Config, changed map[string]bool) error {
	if v, ok := env.Get("PORT"); ok && !changed["port"] {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PORT: %w", err)
		}
		cfg.Port = p
	}
	if v, ok := env.Get("API_ENDPOINT"); ok && !changed["endpoint"] {
		cfg.Endpoint = v
	}
	if v, ok := env.Get("API_TOKEN"); ok && !changed["token"] {
		cfg.Token = v
	}
	if v, ok := env.Get("HTTP_TIMEOUT"); ok && !changed["timeout"] {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse HTTP_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
