package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

const (
	// EnvConversionDefaultQuality overrides the default lossy quality.
	EnvConversionDefaultQuality = "IMGCONV_DEFAULT_QUALITY"

	// EnvConversionIncludeDNG overrides whether .dng counts as a readable input.
	EnvConversionIncludeDNG = "IMGCONV_INCLUDE_DNG"

	// EnvConversionMaxInputSize overrides the maximum accepted source file size.
	EnvConversionMaxInputSize = "IMGCONV_MAX_INPUT_SIZE"

	// EnvConversionMaxConcurrency overrides the batch worker limit.
	EnvConversionMaxConcurrency = "IMGCONV_MAX_CONCURRENCY"

	// EnvConversionStrictICO overrides whether favicon.ico is a real ICO container.
	EnvConversionStrictICO = "IMGCONV_STRICT_ICO"

	// EnvConversionSafeReplace overrides the write-before-delete replacement mode.
	EnvConversionSafeReplace = "IMGCONV_SAFE_REPLACE"
)

// ConversionConfig holds the knobs of the conversion pipeline and batch runner.
type ConversionConfig struct {
	DefaultQuality int    `toml:"default_quality"`
	IncludeDNG     *bool  `toml:"include_dng"`
	MaxInputSize   string `toml:"max_input_size"`
	MaxConcurrency int    `toml:"max_concurrency"` // 0 launches every task at once
	StrictICO      bool   `toml:"strict_ico"`
	SafeReplace    bool   `toml:"safe_replace"`
	FaviconDir     string `toml:"favicon_dir"`
}

// DNGReadable reports whether .dng files are treated as readable inputs.
func (c *ConversionConfig) DNGReadable() bool {
	return c.IncludeDNG == nil || *c.IncludeDNG
}

// MaxInputSizeBytes parses MaxInputSize into bytes. Zero means unlimited.
func (c *ConversionConfig) MaxInputSizeBytes() int64 {
	if c.MaxInputSize == "" {
		return 0
	}
	size, err := units.FromHumanSize(c.MaxInputSize)
	if err != nil {
		return 0
	}
	return size
}

// Finalize applies defaults, loads environment overrides, and validates the conversion configuration.
func (c *ConversionConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ConversionConfig) Merge(overlay *ConversionConfig) {
	if overlay.DefaultQuality != 0 {
		c.DefaultQuality = overlay.DefaultQuality
	}
	if overlay.IncludeDNG != nil {
		v := *overlay.IncludeDNG
		c.IncludeDNG = &v
	}
	if overlay.MaxInputSize != "" {
		c.MaxInputSize = overlay.MaxInputSize
	}
	if overlay.MaxConcurrency != 0 {
		c.MaxConcurrency = overlay.MaxConcurrency
	}
	if overlay.StrictICO {
		c.StrictICO = true
	}
	if overlay.SafeReplace {
		c.SafeReplace = true
	}
	if overlay.FaviconDir != "" {
		c.FaviconDir = overlay.FaviconDir
	}
}

func (c *ConversionConfig) loadDefaults() {
	if c.DefaultQuality == 0 {
		c.DefaultQuality = 80
	}
	if c.IncludeDNG == nil {
		v := true
		c.IncludeDNG = &v
	}
	if c.MaxInputSize == "" {
		c.MaxInputSize = "256MB"
	}
	if c.FaviconDir == "" {
		c.FaviconDir = "favicons"
	}
}

func (c *ConversionConfig) loadEnv() {
	if v := os.Getenv(EnvConversionDefaultQuality); v != "" {
		if q, err := strconv.Atoi(v); err == nil {
			c.DefaultQuality = q
		}
	}
	if v := os.Getenv(EnvConversionIncludeDNG); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.IncludeDNG = &b
		}
	}
	if v := os.Getenv(EnvConversionMaxInputSize); v != "" {
		c.MaxInputSize = v
	}
	if v := os.Getenv(EnvConversionMaxConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrency = n
		}
	}
	if v := os.Getenv(EnvConversionStrictICO); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.StrictICO = b
		}
	}
	if v := os.Getenv(EnvConversionSafeReplace); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SafeReplace = b
		}
	}
}

func (c *ConversionConfig) validate() error {
	if c.DefaultQuality < 1 || c.DefaultQuality > 100 {
		return fmt.Errorf("default_quality must be between 1 and 100: %d", c.DefaultQuality)
	}
	if _, err := units.FromHumanSize(c.MaxInputSize); err != nil {
		return fmt.Errorf("invalid max_input_size: %w", err)
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must not be negative: %d", c.MaxConcurrency)
	}
	return nil
}
