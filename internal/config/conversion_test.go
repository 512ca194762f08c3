package config_test

import (
	"testing"

	"github.com/JaimeStill/image-forge/internal/config"
)

func TestConversionConfig_Defaults(t *testing.T) {
	cfg := &config.ConversionConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.DefaultQuality != 80 {
		t.Errorf("DefaultQuality = %d, want 80", cfg.DefaultQuality)
	}
	if cfg.MaxConcurrency != 0 {
		t.Errorf("MaxConcurrency = %d, want 0 (unbounded)", cfg.MaxConcurrency)
	}
	if cfg.FaviconDir != "favicons" {
		t.Errorf("FaviconDir = %q, want favicons", cfg.FaviconDir)
	}
	if got, want := cfg.MaxInputSizeBytes(), int64(256_000_000); got != want {
		t.Errorf("MaxInputSizeBytes() = %d, want %d", got, want)
	}
}

func TestConversionConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ConversionConfig
	}{
		{"quality too high", config.ConversionConfig{DefaultQuality: 101}},
		{"quality negative", config.ConversionConfig{DefaultQuality: -5}},
		{"bad size", config.ConversionConfig{MaxInputSize: "lots"}},
		{"negative concurrency", config.ConversionConfig{MaxConcurrency: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestConversionConfig_Merge(t *testing.T) {
	off := false
	base := &config.ConversionConfig{DefaultQuality: 80, FaviconDir: "favicons"}
	base.Merge(&config.ConversionConfig{
		IncludeDNG: &off,
		StrictICO:  true,
		FaviconDir: "icons",
	})

	if base.DefaultQuality != 80 {
		t.Errorf("DefaultQuality = %d, want 80 preserved", base.DefaultQuality)
	}
	if base.DNGReadable() {
		t.Error("DNGReadable() = true, want false after merge")
	}
	if !base.StrictICO {
		t.Error("StrictICO = false, want true after merge")
	}
	if base.FaviconDir != "icons" {
		t.Errorf("FaviconDir = %q, want icons", base.FaviconDir)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	cfg := &config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if got := cfg.Addr(); got != "127.0.0.1:8420" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8420", got)
	}
}

func TestServerConfig_InvalidPort(t *testing.T) {
	cfg := &config.ServerConfig{Port: 70000}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() succeeded with invalid port, want error")
	}
}
