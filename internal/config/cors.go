package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	// EnvCORSEnabled overrides the CORS enabled flag.
	EnvCORSEnabled = "IMGCONV_CORS_ENABLED"

	// EnvCORSOrigins overrides the allowed CORS origins (comma-separated).
	EnvCORSOrigins = "IMGCONV_CORS_ORIGINS"

	// EnvCORSAllowedHeaders overrides the allowed HTTP headers (comma-separated).
	EnvCORSAllowedHeaders = "IMGCONV_CORS_ALLOWED_HEADERS"

	// EnvCORSMaxAge overrides the preflight cache duration in seconds.
	EnvCORSMaxAge = "IMGCONV_CORS_MAX_AGE"
)

// CORSConfig controls cross-origin access for editor webviews calling the local API.
type CORSConfig struct {
	Enabled        bool     `toml:"enabled"`
	Origins        []string `toml:"origins"`
	AllowedMethods []string `toml:"allowed_methods"`
	AllowedHeaders []string `toml:"allowed_headers"`
	MaxAge         int      `toml:"max_age"`
}

// Finalize applies defaults and loads environment overrides.
func (c *CORSConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return nil
}

// Merge applies values from overlay configuration. Enabled can only be switched on.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Origins != nil {
		c.Origins = overlay.Origins
	}
	if overlay.AllowedMethods != nil {
		c.AllowedMethods = overlay.AllowedMethods
	}
	if overlay.AllowedHeaders != nil {
		c.AllowedHeaders = overlay.AllowedHeaders
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

func (c *CORSConfig) loadDefaults() {
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type"}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}
}

func (c *CORSConfig) loadEnv() {
	if v := os.Getenv(EnvCORSEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvCORSOrigins); v != "" {
		c.Origins = splitList(v)
	}
	if v := os.Getenv(EnvCORSAllowedHeaders); v != "" {
		c.AllowedHeaders = splitList(v)
	}
	if v := os.Getenv(EnvCORSMaxAge); v != "" {
		if maxAge, err := strconv.Atoi(v); err == nil {
			c.MaxAge = maxAge
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
