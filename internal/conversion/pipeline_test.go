package conversion_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/image-forge/internal/codec"
	"github.com/JaimeStill/image-forge/internal/conversion"
	"github.com/JaimeStill/image-forge/internal/formats"
)

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64">
<rect x="16" y="16" width="32" height="32" fill="#2060c0"/>
</svg>`

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0x40, 0x80, 0xc0, 0xff
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestPipeline_ResizeFitsInsideBox(t *testing.T) {
	tests := []struct {
		name       string
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"unbounded", 0, 0, 300, 200},
		{"square box", 100, 100, 100, 67},
		{"height only", 0, 50, 75, 50},
		{"box larger than image", 600, 600, 300, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "photo.png")
			writeTestPNG(t, src, 300, 200)

			out, err := newSystem(t, nil, codec.NewImaging()).Convert(context.Background(), formats.NewFile(src),
				conversion.ConversionOptions{Format: "jpg", MaxWidth: tt.maxW, MaxHeight: tt.maxH})
			if err != nil {
				t.Fatalf("Convert() error: %v", err)
			}

			b := decodeFile(t, out).Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("output = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if b.Dx() > 300 || b.Dy() > 200 {
				t.Error("output enlarged beyond the source")
			}
		})
	}
}

func TestPipeline_VectorAlphaHandling(t *testing.T) {
	tests := []struct {
		format     string
		wantOpaque bool
	}{
		{"jpg", true},
		{"png", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "logo.svg")
			if err := os.WriteFile(src, []byte(logoSVG), 0644); err != nil {
				t.Fatal(err)
			}

			out, err := newSystem(t, nil, codec.NewImaging()).Convert(context.Background(), formats.NewFile(src),
				conversion.ConversionOptions{Format: tt.format})
			if err != nil {
				t.Fatalf("Convert() error: %v", err)
			}

			img := decodeFile(t, out)
			_, _, _, a := img.At(0, 0).RGBA()
			if opaque := a == 0xffff; opaque != tt.wantOpaque {
				t.Errorf("corner alpha = %#x, want opaque %v", a, tt.wantOpaque)
			}

			if tt.wantOpaque {
				r, g, b, _ := img.At(0, 0).RGBA()
				if r < 0xf000 || g < 0xf000 || b < 0xf000 {
					t.Errorf("corner = %v, want white background", color.RGBA64Model.Convert(img.At(0, 0)))
				}
			}
		})
	}
}

func TestPipeline_FaviconSetFromSVG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.svg")
	if err := os.WriteFile(src, []byte(logoSVG), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := newSystem(t, nil, codec.NewImaging()).GenerateFavicons(context.Background(), formats.NewFile(src),
		conversion.FaviconOptions{Sizes: []int{16, 32, 48}, Format: "png"})
	if err != nil {
		t.Fatalf("GenerateFavicons() error: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("paths = %v, want 4", paths)
	}

	for i, want := range []int{16, 32, 48, 16} {
		f, err := os.Open(paths[i])
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s is not PNG: %v", paths[i], err)
		}
		if cfg.Width != want || cfg.Height != want {
			t.Errorf("%s = %dx%d, want %dx%d", filepath.Base(paths[i]), cfg.Width, cfg.Height, want, want)
		}
	}

	if _, err := os.Stat(src); err != nil {
		t.Errorf("source removed: %v", err)
	}
}
