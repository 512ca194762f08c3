package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	// EnvServerHost overrides the server bind host.
	EnvServerHost = "IMGCONV_SERVER_HOST"

	// EnvServerPort overrides the server port.
	EnvServerPort = "IMGCONV_SERVER_PORT"
)

// ServerConfig contains HTTP server configuration for `imgconv serve`.
type ServerConfig struct {
	Host            string     `toml:"host"`
	Port            int        `toml:"port"`
	ReadTimeout     string     `toml:"read_timeout"`
	WriteTimeout    string     `toml:"write_timeout"`
	ShutdownTimeout string     `toml:"shutdown_timeout"`
	MaxRequestSize  int64      `toml:"max_request_size"`
	CORS            CORSConfig `toml:"cors"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ReadTimeoutDuration parses and returns the read timeout.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// WriteTimeoutDuration parses and returns the write timeout.
func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

// ShutdownTimeoutDuration parses and returns the server shutdown timeout.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the server configuration.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	if err := c.CORS.Finalize(); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.MaxRequestSize != 0 {
		c.MaxRequestSize = overlay.MaxRequestSize
	}
	c.CORS.Merge(&overlay.CORS)
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 8420
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "30s"
	}
	// Batches run inside the request, so the write timeout is generous.
	if c.WriteTimeout == "" {
		c.WriteTimeout = "10m"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.MaxRequestSize == 0 {
		c.MaxRequestSize = 1 << 20
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.WriteTimeout); err != nil {
		return fmt.Errorf("invalid write_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if c.MaxRequestSize < 0 {
		return fmt.Errorf("max_request_size must be positive")
	}
	return nil
}
