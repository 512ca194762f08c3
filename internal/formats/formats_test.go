package formats_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/image-forge/internal/formats"
)

func TestClassifier_IsReadableImage(t *testing.T) {
	c := formats.NewClassifier(true)

	supported := []string{
		"png", "jpg", "jpeg", "webp", "gif", "tiff",
		"bmp", "avif", "heic", "heif", "svg", "dng",
	}
	for _, ext := range supported {
		t.Run(ext, func(t *testing.T) {
			if !c.IsReadableImage("/photos/a." + ext) {
				t.Errorf("IsReadableImage(.%s) = false, want true", ext)
			}
		})
	}

	tests := []struct {
		path string
		want bool
	}{
		{"/photos/PHOTO.PNG", true},
		{"/photos/Logo.SvG", true},
		{"/photos/archive.tar.JPEG", true},
		{"/photos/notes.txt", false},
		{"/photos/doc.pdf", false},
		{"/photos/png", false},
		{"/photos/.png", true},
		{"/photos/image.png.bak", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := c.IsReadableImage(tt.path); got != tt.want {
				t.Errorf("IsReadableImage(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestClassifier_DNGIsConfigurable(t *testing.T) {
	if formats.NewClassifier(false).IsReadableImage("raw.dng") {
		t.Error("IsReadableImage(raw.dng) = true with DNG disabled")
	}
	if !formats.NewClassifier(true).IsReadableImage("raw.DNG") {
		t.Error("IsReadableImage(raw.DNG) = false with DNG enabled")
	}
}

func TestIsVectorInput(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"logo.svg", true},
		{"LOGO.SVG", true},
		{"logo.svgz", false},
		{"logo.png", false},
		{"svg", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := formats.IsVectorInput(tt.path); got != tt.want {
				t.Errorf("IsVectorInput(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseTargetFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    formats.Format
		wantErr bool
	}{
		{"webp", formats.WebP, false},
		{"WEBP", formats.WebP, false},
		{"jpg", formats.JPEG, false},
		{"jpeg", formats.JPEG, false},
		{"png", formats.PNG, false},
		{"ico", "", true},
		{"gif", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formats.ParseTargetFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, formats.ErrInvalidFormat) {
					t.Errorf("ParseTargetFormat(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTargetFormat(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTargetFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFaviconFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    formats.Format
		wantErr bool
	}{
		{"", formats.PNG, false},
		{"png", formats.PNG, false},
		{"ICO", formats.ICO, false},
		{"webp", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formats.ParseFaviconFormat(tt.input)
			if tt.wantErr != (err != nil) {
				t.Fatalf("ParseFaviconFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFaviconFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFile_Paths(t *testing.T) {
	dir := t.TempDir()
	f := formats.NewFile(filepath.Join(dir, "photo.PNG"))

	if f.Ext() != "png" {
		t.Errorf("Ext() = %q, want png", f.Ext())
	}
	if f.Base() != "photo" {
		t.Errorf("Base() = %q, want photo", f.Base())
	}
	if f.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", f.Dir(), dir)
	}
	if got, want := f.WithExt("webp"), filepath.Join(dir, "photo.webp"); got != want {
		t.Errorf("WithExt(webp) = %q, want %q", got, want)
	}
	if f.IsVector() {
		t.Error("IsVector() = true for png")
	}
}

func TestNewFile_Absolute(t *testing.T) {
	f := formats.NewFile("relative/logo.svg")

	if !filepath.IsAbs(f.Path()) {
		t.Errorf("Path() = %q, want absolute", f.Path())
	}
	if !f.IsVector() {
		t.Error("IsVector() = false for svg")
	}
}
