// Package config resolves the adapter configuration from an optional
// dracor.yaml file overlaid by environment variables. The environment always
// wins, so deployments configure the server entirely through it.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Environment variables understood by Load.
const (
	EnvBaseURL   = "DRACOR_API_BASE_URL"
	EnvTimeout   = "DRACOR_TIMEOUT_SECONDS"
	EnvTransport = "TRANSPORT"
	EnvHost      = "HOST"
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
)

type Config struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Transport      string `yaml:"transport"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	LogLevel       string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		BaseURL:        "https://dracor.org/api/v1",
		TimeoutSeconds: 30,
		Transport:      TransportStdio,
		Host:           "0.0.0.0",
		Port:           8000,
		LogLevel:       "info",
	}
}

// Load resolves the configuration: defaults, then the named yaml file if it
// exists, then environment variables.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("loading config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.BaseURL = envString(EnvBaseURL, cfg.BaseURL)
	cfg.TimeoutSeconds = envInt(EnvTimeout, cfg.TimeoutSeconds)
	cfg.Transport = envString(EnvTransport, cfg.Transport)
	cfg.Host = envString(EnvHost, cfg.Host)
	cfg.Port = envInt(EnvPort, cfg.Port)
	cfg.LogLevel = envString(EnvLogLevel, cfg.LogLevel)
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid base url: %q", cfg.BaseURL)
	}

	// "streamable-http" is what the MCP transport is called elsewhere;
	// accept it as an alias.
	switch strings.ToLower(cfg.Transport) {
	case TransportStdio:
		cfg.Transport = TransportStdio
	case TransportHTTP, "streamable-http":
		cfg.Transport = TransportHTTP
	default:
		return fmt.Errorf("unknown transport: %q (use %q or %q)", cfg.Transport, TransportStdio, TransportHTTP)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid timeout: %d seconds", cfg.TimeoutSeconds)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
		cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	default:
		return fmt.Errorf("unknown log level: %q", cfg.LogLevel)
	}
	return nil
}

// Timeout returns the upstream request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Addr returns the HTTP bind address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
