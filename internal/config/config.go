// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JaimeStill/image-forge/pkg/database"
	"github.com/JaimeStill/image-forge/pkg/logging"
	"github.com/JaimeStill/image-forge/pkg/openapi"
	"github.com/JaimeStill/image-forge/pkg/pagination"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvConfigEnv specifies the environment name for configuration overlays.
	EnvConfigEnv = "IMGCONV_ENV"

	// EnvShutdownTimeout overrides the shutdown timeout.
	EnvShutdownTimeout = "IMGCONV_SHUTDOWN_TIMEOUT"
)

var loggingEnv = &logging.Env{
	Level:  "IMGCONV_LOG_LEVEL",
	Format: "IMGCONV_LOG_FORMAT",
	Output: "IMGCONV_LOG_OUTPUT",
}

var databaseEnv = &database.Env{
	Enabled:         "IMGCONV_DATABASE_ENABLED",
	URL:             "IMGCONV_DATABASE_URL",
	Host:            "IMGCONV_DATABASE_HOST",
	Port:            "IMGCONV_DATABASE_PORT",
	Name:            "IMGCONV_DATABASE_NAME",
	User:            "IMGCONV_DATABASE_USER",
	Password:        "IMGCONV_DATABASE_PASSWORD",
	SSLMode:         "IMGCONV_DATABASE_SSLMODE",
	MaxOpenConns:    "IMGCONV_DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "IMGCONV_DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "IMGCONV_DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "IMGCONV_DATABASE_CONN_TIMEOUT",
}

var paginationEnv = &pagination.Env{
	DefaultPageSize: "IMGCONV_HISTORY_PAGE_SIZE",
	MaxPageSize:     "IMGCONV_HISTORY_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "IMGCONV_OPENAPI_TITLE",
	Description: "IMGCONV_OPENAPI_DESCRIPTION",
	Version:     "IMGCONV_OPENAPI_VERSION",
}

// Config represents the root application configuration.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Logging         logging.Config    `toml:"logging"`
	Database        database.Config   `toml:"database"`
	Pagination      pagination.Config `toml:"pagination"`
	Conversion      ConversionConfig  `toml:"conversion"`
	OpenAPI         openapi.Config    `toml:"openapi"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the configuration file at path and applies any environment-specific
// overlay found beside it. A missing base file yields an empty configuration so
// the CLI runs on defaults; Finalize must still be called.
func Load(path string) (*Config, error) {
	if path == "" {
		path = BaseConfigFile
	}

	cfg, err := load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
	} else if err != nil {
		return nil, err
	}

	if overlay := overlayPath(path); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Conversion.Finalize(); err != nil {
		return fmt.Errorf("conversion: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Database.Merge(&overlay.Database)
	c.Pagination.Merge(&overlay.Pagination)
	c.Conversion.Merge(&overlay.Conversion)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// overlayPath returns config.<env>.toml beside base when IMGCONV_ENV is set
// and the file exists.
func overlayPath(base string) string {
	env := os.Getenv(EnvConfigEnv)
	if env == "" {
		return ""
	}

	name := fmt.Sprintf(OverlayConfigPattern, env)
	if filepath.Base(base) != BaseConfigFile {
		ext := filepath.Ext(base)
		name = strings.TrimSuffix(filepath.Base(base), ext) + "." + env + ext
	}

	p := filepath.Join(filepath.Dir(base), name)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
