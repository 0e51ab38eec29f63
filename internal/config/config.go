// Package config holds the service settings and loads them from a YAML
// file. Command-line flags and environment variables are layered on top by
// the cli package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MinJWTSecretLength is the shortest HMAC-SHA256 secret accepted.
const MinJWTSecretLength = 32

// Config is the full set of runtime settings.
type Config struct {
	Port              int           `yaml:"port"`
	DatabasePath      string        `yaml:"database_path"`
	JWTSecret         string        `yaml:"jwt_secret"`
	TokenTTL          time.Duration `yaml:"token_ttl"`
	BcryptCost        int           `yaml:"bcrypt_cost"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	CORSOrigins       []string      `yaml:"cors_origins"`
	CookieSecure      bool          `yaml:"cookie_secure"`
	TrustProxy        bool          `yaml:"trust_proxy"`
	AuthRateLimit     float64       `yaml:"auth_rate_limit"`
	AuthRateBurst     int           `yaml:"auth_rate_burst"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		Port:              8080,
		DatabasePath:      "recipes.db",
		TokenTTL:          24 * time.Hour,
		BcryptCost:        12,
		LogLevel:          "info",
		LogFormat:         "text",
		CORSOrigins:       []string{"*"},
		CookieSecure:      true,
		AuthRateLimit:     5,
		AuthRateBurst:     10,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// yields the defaults. Keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		errs = append(errs, fmt.Errorf("bcrypt cost must be between 4 and 14, got %d", c.BcryptCost))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "both":
	default:
		errs = append(errs, fmt.Errorf("log format must be text, json or both, got %q", c.LogFormat))
	}
	if c.AuthRateLimit < 0 || c.AuthRateBurst < 1 {
		errs = append(errs, errors.New("auth rate limit must be >= 0 with a burst of at least 1"))
	}
	return errors.Join(errs...)
}

// ValidateServer additionally checks what the HTTP server needs.
func (c *Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT secret must be at least %d characters for HMAC-SHA256 security", MinJWTSecretLength)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
