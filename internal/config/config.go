// Package config loads the stepcalc YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "stepcalc.yaml"

// Config holds all stepcalc configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	REPL    REPLConfig    `yaml:"repl"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP tool endpoint.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	MaxBodyBytes      int64  `yaml:"max_body_bytes"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	ReadTimeout       string `yaml:"read_timeout"`
	WriteTimeout      string `yaml:"write_timeout"`
	IdleTimeout       string `yaml:"idle_timeout"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
}

// REPLConfig configures the interactive loop.
type REPLConfig struct {
	Prompt       string `yaml:"prompt"`
	ShowTree     bool   `yaml:"show_tree"`
	ShowTrace    bool   `yaml:"show_trace"`
	HistoryLimit int    `yaml:"history_limit"` // 0 keeps everything
	Color        bool   `yaml:"color"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`  // debug, info, warn, error
	Format      string `yaml:"format"` // json, console
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			MaxBodyBytes:      1 << 20,
			ReadHeaderTimeout: "5s",
			ReadTimeout:       "15s",
			WriteTimeout:      "15s",
			IdleTimeout:       "60s",
			ShutdownTimeout:   "10s",
		},
		REPL: REPLConfig{
			Prompt:       ">> ",
			ShowTree:     true,
			ShowTrace:    true,
			HistoryLimit: 0,
			Color:        false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("STEPCALC_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("STEPCALC_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
}

func duration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GetReadHeaderTimeout returns the header read timeout as a duration.
func (s ServerConfig) GetReadHeaderTimeout() time.Duration {
	return duration(s.ReadHeaderTimeout, 5*time.Second)
}

// GetReadTimeout returns the request read timeout as a duration.
func (s ServerConfig) GetReadTimeout() time.Duration {
	return duration(s.ReadTimeout, 15*time.Second)
}

// GetWriteTimeout returns the response write timeout as a duration.
func (s ServerConfig) GetWriteTimeout() time.Duration {
	return duration(s.WriteTimeout, 15*time.Second)
}

// GetIdleTimeout returns the keep-alive idle timeout as a duration.
func (s ServerConfig) GetIdleTimeout() time.Duration {
	return duration(s.IdleTimeout, 60*time.Second)
}

// GetShutdownTimeout returns how long a graceful shutdown may take.
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	return duration(s.ShutdownTimeout, 10*time.Second)
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server address not configured")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.REPL.HistoryLimit < 0 {
		return fmt.Errorf("repl history_limit must not be negative, got %d", c.REPL.HistoryLimit)
	}

	validLevel := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (valid: json, console)", c.Logging.Format)
	}
	return nil
}
