package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/image-forge/internal/conversion"
)

func intPtr(v int) *int { return &v }

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	t.Setenv("IMGCONV_ENV", "")
	t.Setenv("IMGCONV_LOG_LEVEL", "error")
	return filepath.Join(t.TempDir(), "config.toml")
}

func TestSizeList(t *testing.T) {
	var s sizeList
	if err := s.Set("16, 32,,180"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if s.String() != "16,32,180" {
		t.Errorf("String() = %q, want 16,32,180", s.String())
	}
	if err := s.Set("16,big"); err == nil {
		t.Error("Set() accepted a non-numeric size")
	}
}

func TestOptionalInt(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want *int
	}{
		{"unset", nil, nil},
		{"explicit zero", []string{"-quality", "0"}, intPtr(0)},
		{"negative", []string{"-quality=-5"}, intPtr(-5)},
		{"in range", []string{"-quality", "60"}, intPtr(60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			var quality optionalInt
			fs.Var(&quality, "quality", "")
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse() error: %v", err)
			}

			got := quality.Value()
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var quality optionalInt
	fs.Var(&quality, "quality", "")
	if err := fs.Parse([]string{"-quality", "high"}); err == nil {
		t.Error("Parse(high) error = nil")
	}
}

func TestRunConvert_ExplicitZeroQuality(t *testing.T) {
	cfg := emptyConfig(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writePNG(t, src, 8, 8)

	var out bytes.Buffer
	if err := runConvert([]string{"-config", cfg, "-format", "jpg", "-quality", "0", src}, &out); err != nil {
		t.Fatalf("runConvert() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "photo.jpg")); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errFilesFailed, 1},
		{conversion.ErrNothingSelected, 1},
		{errors.New("boom"), 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestRunConvert(t *testing.T) {
	cfg := emptyConfig(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	writePNG(t, src, 40, 20)

	var out bytes.Buffer
	err := runConvert([]string{"-config", cfg, "-format", "jpg", "-max-width", "10", src}, &out)
	if err != nil {
		t.Fatalf("runConvert() failed: %v", err)
	}

	if !strings.Contains(out.String(), "1 of 1 succeeded") {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source should be removed after conversion")
	}

	f, err := os.Open(filepath.Join(dir, "photo.jpg"))
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	cfgImg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfgImg.Width != 10 || cfgImg.Height != 5 {
		t.Errorf("output = %dx%d, want 10x5", cfgImg.Width, cfgImg.Height)
	}
}

func TestRunConvert_PartialFailure(t *testing.T) {
	cfg := emptyConfig(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writePNG(t, src, 8, 8)

	var out bytes.Buffer
	err := runConvert([]string{"-config", cfg, "-format", "png", src, filepath.Join(dir, "gone.png")}, &out)
	if !errors.Is(err, errFilesFailed) {
		t.Fatalf("runConvert() error = %v, want errFilesFailed", err)
	}
	if !strings.Contains(out.String(), "1 of 2 succeeded") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunConvert_NothingSelected(t *testing.T) {
	cfg := emptyConfig(t)

	err := runConvert([]string{"-config", cfg, "readme.md"}, &bytes.Buffer{})
	if !errors.Is(err, conversion.ErrNothingSelected) {
		t.Errorf("runConvert() error = %v, want ErrNothingSelected", err)
	}
}

func TestRunFavicons(t *testing.T) {
	cfg := emptyConfig(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	writePNG(t, src, 64, 64)

	var out bytes.Buffer
	if err := runFavicons([]string{"-config", cfg, "-sizes", "16,32", src}, &out); err != nil {
		t.Fatalf("runFavicons() failed: %v", err)
	}

	for _, name := range []string{"favicon-16x16.png", "favicon-32x32.png", "favicon.ico"} {
		if _, err := os.Stat(filepath.Join(dir, "favicons", name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("favicon generation must keep the source")
	}
}

func TestRunFormats(t *testing.T) {
	cfg := emptyConfig(t)

	var out bytes.Buffer
	if err := runFormats([]string{"-config", cfg}, &out); err != nil {
		t.Fatalf("runFormats() failed: %v", err)
	}
	if !strings.Contains(out.String(), "targets:   webp, jpg, png") {
		t.Errorf("output = %q", out.String())
	}
}
