// Package config loads qhg settings. Values come from built-in defaults, then
// an optional YAML or TOML file, then QHG_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/talgya/quantum-gematria/internal/logger"
)

const appName = "qhg"

// Config holds all configuration settings.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Storage   StorageConfig   `yaml:"storage" toml:"storage"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
	Batch     BatchConfig     `yaml:"batch" toml:"batch"`
	Log       LogConfig       `yaml:"log" toml:"log"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host        string   `yaml:"host" toml:"host"`
	Port        int      `yaml:"port" toml:"port"`
	CORSOrigins []string `yaml:"cors_origins" toml:"cors_origins"`
	AdminKey    string   `yaml:"admin_key" toml:"admin_key"` // empty disables admin routes
}

// StorageConfig contains history database configuration.
type StorageConfig struct {
	Path         string `yaml:"path" toml:"path"`
	HistoryLimit int    `yaml:"history_limit" toml:"history_limit"` // entries kept per kind per session
}

// RateLimitConfig bounds requests per client IP on compute routes.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `yaml:"burst" toml:"burst"`
}

// BatchConfig bounds batch analysis.
type BatchConfig struct {
	MaxTexts int `yaml:"max_texts" toml:"max_texts"`
	Workers  int `yaml:"workers" toml:"workers"` // 0 means GOMAXPROCS
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        10000,
			CORSOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Path:         filepath.Join(xdg.DataHome, appName, "history.db"),
			HistoryLimit: 10,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Batch: BatchConfig{
			MaxTexts: 100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Load builds a Config from defaults, the file at path (a missing file is
// not an error) and the environment, then validates it. An empty path means
// DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("config: decode TOML %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("config: decode YAML %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" && err == nil {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				err = fmt.Errorf("config: %s: %w", key, perr)
				return
			}
			*dst = n
		}
	}

	str("QHG_HOST", &c.Server.Host)
	num("QHG_PORT", &c.Server.Port)
	str("QHG_ADMIN_KEY", &c.Server.AdminKey)
	if v := os.Getenv("QHG_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	str("QHG_DB_PATH", &c.Storage.Path)
	num("QHG_HISTORY_LIMIT", &c.Storage.HistoryLimit)
	if v := os.Getenv("QHG_RATE_LIMIT_RPS"); v != "" && err == nil {
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			err = fmt.Errorf("config: QHG_RATE_LIMIT_RPS: %w", perr)
		} else {
			c.RateLimit.RequestsPerSecond = f
		}
	}
	num("QHG_RATE_LIMIT_BURST", &c.RateLimit.Burst)
	num("QHG_BATCH_MAX_TEXTS", &c.Batch.MaxTexts)
	num("QHG_BATCH_WORKERS", &c.Batch.Workers)
	str("QHG_LOG_LEVEL", &c.Log.Level)
	str("QHG_LOG_FORMAT", &c.Log.Format)

	return err
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate rejects settings the daemon cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path is empty"))
	}
	if c.Storage.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("storage.history_limit must be positive, got %d", c.Storage.HistoryLimit))
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit.requests_per_second must be positive, got %v", c.RateLimit.RequestsPerSecond))
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit.burst must be positive, got %d", c.RateLimit.Burst))
	}
	if c.Batch.MaxTexts <= 0 {
		errs = append(errs, fmt.Errorf("batch.max_texts must be positive, got %d", c.Batch.MaxTexts))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers))
	}
	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("log.level %q unknown", c.Log.Level))
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log.format %q unknown", c.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
