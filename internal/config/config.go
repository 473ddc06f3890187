// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds all runtime settings.
type Config struct {
	// HTTP server. Binds to loopback by default: the server is a single-user local process.
	Addr string `env:"SPLITBILL_ADDR" envDefault:"127.0.0.1"`
	Port int    `env:"SPLITBILL_PORT" envDefault:"8080"`

	// Storage
	Store      string `env:"SPLITBILL_STORE" envDefault:"sqlite"`
	DBPath     string `env:"SPLITBILL_DB_PATH" envDefault:"./data/splitbill.db"`
	HistoryKey string `env:"SPLITBILL_HISTORY_KEY" envDefault:"splitbill_pro_history"`

	// Bills
	DefaultCurrency string `env:"SPLITBILL_DEFAULT_CURRENCY" envDefault:"IDR"`

	// Static frontend assets; empty disables static serving.
	StaticPath string `env:"SPLITBILL_STATIC_PATH"`

	// Logging: debug, info, warn, error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file (missing files are ignored), then parses the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))
	return cfg, nil
}

// Validate returns every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if c.Addr != "" && net.ParseIP(c.Addr) == nil && c.Addr != "localhost" {
		errs = append(errs, fmt.Errorf("invalid address %q: must be an IP or localhost", c.Addr))
	}

	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("SQLite database path cannot be empty when using sqlite store"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid store %q: must be one of [%s %s]", c.Store, StoreSQLite, StoreMemory))
	}

	if c.HistoryKey == "" {
		errs = append(errs, errors.New("history key cannot be empty"))
	}
	if len(c.DefaultCurrency) != 3 {
		errs = append(errs, fmt.Errorf("invalid default currency %q: must be a 3-letter code", c.DefaultCurrency))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ListenAddr returns host:port for the HTTP server.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Addr, strconv.Itoa(c.Port))
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug/info/warn/error (case-insensitive) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
}
