package openapi

import "os"

// Config is the document metadata published with the API.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Version     string `toml:"version"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	Title       string
	Description string
	Version     string
}

// Finalize applies defaults and environment overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge overwrites fields set in overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "imgconv API"
	}
	if c.Description == "" {
		c.Description = "Batch image conversion and favicon generation for editor integrations."
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	lookup := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	lookup(env.Title, &c.Title)
	lookup(env.Description, &c.Description)
	lookup(env.Version, &c.Version)
}
