package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the server configuration.
// Environment variables are read with the BLOG_ prefix, e.g. BLOG_PORT.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	Port int `envconfig:"PORT" default:"8080"`

	DBPath      string `envconfig:"DB_PATH" default:"blog.db"`
	TemplateDir string `envconfig:"TEMPLATE_DIR" default:"web/templates"`
	StaticDir   string `envconfig:"STATIC_DIR" default:"web/static"`

	CookieName string        `envconfig:"COOKIE_NAME" default:"session_id"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	PageSize int `envconfig:"PAGE_SIZE" default:"10"`
}

// New parses the environment into a Config.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("BLOG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("invalid PAGE_SIZE: %d", c.PageSize)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid SESSION_TTL: %s", c.SessionTTL)
	}
	return nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment: EnvTesting,
		LogLevel:    "debug",
		Port:        8080,
		DBPath:      "test.db",
		TemplateDir: "web/templates",
		StaticDir:   "web/static",
		CookieName:  "session_id",
		SessionTTL:  24 * time.Hour,
		PageSize:    10,
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
