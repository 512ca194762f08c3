// Package codec is the narrow boundary between the converter and the raster
// engine. The conversion core only sees Codec; the production backend is
// built on disintegration/imaging and friends, and tests substitute a fake.
package codec

import (
	"context"
	"image"
	"image/color"

	"github.com/JaimeStill/image-forge/internal/formats"
)

// Codec decodes, resizes, flattens and encodes raster surfaces.
type Codec interface {
	// Decode reads path into a surface. With Animated set, multi-frame
	// sources keep every frame; otherwise only the first frame is decoded.
	Decode(ctx context.Context, path string, opts DecodeOptions) (*Surface, error)

	// Resize returns a new surface resized per opts.
	Resize(s *Surface, opts ResizeOptions) (*Surface, error)

	// Flatten composites every frame onto an opaque background.
	Flatten(s *Surface, background color.Color) (*Surface, error)

	// Encode serializes the surface in format.
	Encode(s *Surface, format formats.Format, opts EncodeOptions) ([]byte, error)
}

// DecodeOptions controls decoding.
type DecodeOptions struct {
	Animated bool
}

// Fit selects how Resize maps a surface into the requested box.
type Fit string

const (
	// FitInside scales to fit within the box preserving aspect ratio.
	FitInside Fit = "inside"

	// FitCover scales and center-crops to fill the box exactly.
	FitCover Fit = "cover"
)

// ResizeOptions describes the target box. A zero Width or Height leaves that
// axis unconstrained for FitInside. FitCover requires both.
type ResizeOptions struct {
	Width   int
	Height  int
	Fit     Fit
	Enlarge bool
}

// Effort is the compression effort requested from lossless encoders.
type Effort int

const (
	EffortDefault Effort = iota
	EffortMax
)

// EncodeOptions carries encoder parameters. Quality is expected in [1,100].
// PNG is lossless, so Quality there selects the zlib compression level
// (higher quality compresses harder); Effort overrides it with the maximum.
type EncodeOptions struct {
	Quality int
	Effort  Effort
}

// Surface is a decoded raster image. Frames share the same bounds; Delays
// holds per-frame durations in hundredths of a second for animated sources.
type Surface struct {
	Frames []image.Image
	Delays []int
	Vector bool
}

// NewSurface wraps a single still frame.
func NewSurface(img image.Image) *Surface {
	return &Surface{Frames: []image.Image{img}}
}

// First returns the first frame, or nil for an empty surface.
func (s *Surface) First() image.Image {
	if len(s.Frames) == 0 {
		return nil
	}
	return s.Frames[0]
}

// Width returns the pixel width of the first frame.
func (s *Surface) Width() int {
	if img := s.First(); img != nil {
		return img.Bounds().Dx()
	}
	return 0
}

// Height returns the pixel height of the first frame.
func (s *Surface) Height() int {
	if img := s.First(); img != nil {
		return img.Bounds().Dy()
	}
	return 0
}

// Animated reports whether the surface holds more than one frame.
func (s *Surface) Animated() bool {
	return len(s.Frames) > 1
}

// Still returns a single-frame surface holding the first frame.
func (s *Surface) Still() *Surface {
	if len(s.Frames) <= 1 {
		return s
	}
	return &Surface{Frames: s.Frames[:1], Vector: s.Vector}
}

// CarriesAnimation reports whether Encode keeps every frame for format.
// Other formats encode only the first frame.
func CarriesAnimation(format formats.Format) bool {
	return format == formats.WebP
}

// ClampQuality limits q to [1,100].
func ClampQuality(q int) int {
	return min(max(q, 1), 100)
}

// FitBox returns the dimensions of a w×h image scaled to fit inside a
// maxW×maxH box without enlarging. A zero bound leaves that axis free.
func FitBox(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	if maxW <= 0 {
		maxW = w
	}
	if maxH <= 0 {
		maxH = h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(int(float64(w)*scale+0.5), 1)
	nh := max(int(float64(h)*scale+0.5), 1)
	return min(nw, maxW), min(nh, maxH)
}
