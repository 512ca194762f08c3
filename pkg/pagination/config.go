// Package pagination provides types and utilities for paginated data queries.
package pagination

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Page size bounds applied when configuration leaves them unset.
const (
	DefaultPageSize = 20
	DefaultMaxSize  = 100

	// CeilingPageSize bounds MaxPageSize so a single listing stays small
	// enough to render in an editor panel.
	CeilingPageSize = 1000
)

// Env maps environment variable names for pagination configuration.
type Env struct {
	DefaultPageSize string
	MaxPageSize     string
}

// Config holds the page sizes used when listing stored records.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// Finalize applies defaults, loads environment overrides, and validates the
// configuration. Malformed environment values are errors, not ignored.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if err := c.loadEnv(env); err != nil {
		return err
	}
	return c.validate()
}

// Merge applies positive values from overlay onto the receiver.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize > 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize > 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func (c *Config) loadDefaults() {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = DefaultPageSize
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = max(DefaultMaxSize, c.DefaultPageSize)
	}
}

func (c *Config) loadEnv(env *Env) error {
	if env == nil {
		return nil
	}

	var errs []error
	lookup := func(name string, dst *int) {
		v := os.Getenv(name)
		if name == "" || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid integer %q", name, v))
			return
		}
		*dst = n
	}

	lookup(env.DefaultPageSize, &c.DefaultPageSize)
	lookup(env.MaxPageSize, &c.MaxPageSize)
	return errors.Join(errs...)
}

func (c *Config) validate() error {
	var errs []error
	if c.DefaultPageSize < 1 {
		errs = append(errs, fmt.Errorf("default_page_size must be positive, got %d", c.DefaultPageSize))
	}
	if c.MaxPageSize < 1 || c.MaxPageSize > CeilingPageSize {
		errs = append(errs, fmt.Errorf("max_page_size must be in [1,%d], got %d", CeilingPageSize, c.MaxPageSize))
	}
	if c.DefaultPageSize > c.MaxPageSize {
		errs = append(errs, fmt.Errorf("default_page_size %d exceeds max_page_size %d", c.DefaultPageSize, c.MaxPageSize))
	}
	return errors.Join(errs...)
}
