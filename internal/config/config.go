// Package config loads runtime configuration from DDC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

const envProd = "prod"

// Config captures all runtime configuration.
type Config struct {
	Addr        string `env:"DDC_ADDR"`
	Env         string `env:"DDC_ENV" envDefault:"dev"`
	LogLevel    string `env:"DDC_LOG_LEVEL" envDefault:"info"`
	DefaultLang string `env:"DDC_DEFAULT_LANG" envDefault:"ru"`
	ContentFile string `env:"DDC_CONTENT_FILE"`

	Session SessionConfig
	Server  ServerConfig

	TitleInterval time.Duration `env:"DDC_TITLE_INTERVAL" envDefault:"4s"`
}

// SessionConfig configures the visitor session cookie and in-memory store.
type SessionConfig struct {
	HashKey     string        `env:"DDC_SESSION_HASH_KEY"`
	BlockKey    string        `env:"DDC_SESSION_BLOCK_KEY"`
	IdleTimeout time.Duration `env:"DDC_SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	MaxSessions int           `env:"DDC_SESSION_MAX" envDefault:"10000"`
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	ReadHeaderTimeout time.Duration `env:"DDC_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ReadTimeout       time.Duration `env:"DDC_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"DDC_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"DDC_IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout    time.Duration `env:"DDC_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout   time.Duration `env:"DDC_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given variables only.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Addr == "" {
		// Cloud Run style PORT as a fallback
		port := lookup(opts, "PORT")
		if port == "" {
			port = "8080"
		}
		cfg.Addr = ":" + port
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.DefaultLang = strings.ToLower(strings.TrimSpace(cfg.DefaultLang))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func lookup(opts env.Options, key string) string {
	if opts.Environment != nil {
		return opts.Environment[key]
	}
	return os.Getenv(key)
}

// IsProd reports whether the server runs in production mode.
func (c Config) IsProd() bool { return c.Env == envProd }

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	var errs []error
	if c.TitleInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: DDC_TITLE_INTERVAL must be positive", ErrInvalidConfig))
	}
	if c.Session.IdleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: DDC_SESSION_IDLE_TIMEOUT must be positive", ErrInvalidConfig))
	}
	if c.Session.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("%w: DDC_SESSION_MAX must be positive", ErrInvalidConfig))
	}
	if c.IsProd() && len(c.Session.HashKey) < 32 {
		errs = append(errs, fmt.Errorf("%w: DDC_SESSION_HASH_KEY of at least 32 bytes is required in prod", ErrInvalidConfig))
	}
	if n := len(c.Session.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		errs = append(errs, fmt.Errorf("%w: DDC_SESSION_BLOCK_KEY must be 16, 24 or 32 bytes", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
