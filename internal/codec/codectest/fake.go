// Package codectest provides a recording in-memory codec for tests.
package codectest

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"github.com/JaimeStill/image-forge/internal/codec"
	"github.com/JaimeStill/image-forge/internal/formats"
)

// ErrEncode is returned by Encode when the fake is told to fail.
var ErrEncode = errors.New("fake encode failure")

// EncodeCall records one Encode invocation.
type EncodeCall struct {
	Format  formats.Format
	Quality int
	Effort  codec.Effort
	Width   int
	Height  int
	Frames  int
	Opaque  bool
}

// Fake is a Codec that decodes any existing file into a transparent surface
// of a configurable size and encodes to a short textual description.
type Fake struct {
	// Size returns the decoded dimensions for a path. Defaults to 64x48.
	Size func(path string) (int, int)

	// Frames is the frame count returned by animation-aware decodes.
	// Zero or one yields a still surface.
	Frames int

	// FailEncode makes every Encode call fail.
	FailEncode bool

	mu       sync.Mutex
	decodes  []codec.DecodeOptions
	resizes  []codec.ResizeOptions
	flattens int
	encodes  []EncodeCall
}

// New returns a fake with default sizing.
func New() *Fake {
	return &Fake{}
}

func (f *Fake) Decode(ctx context.Context, path string, opts codec.DecodeOptions) (*codec.Surface, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	w, h := 64, 48
	if f.Size != nil {
		w, h = f.Size(path)
	}

	f.mu.Lock()
	f.decodes = append(f.decodes, opts)
	f.mu.Unlock()

	n := 1
	if opts.Animated && f.Frames > 1 {
		n = f.Frames
	}
	s := blank(n, w, h)
	s.Vector = formats.IsVectorInput(path)
	return s, nil
}

func (f *Fake) Resize(s *codec.Surface, opts codec.ResizeOptions) (*codec.Surface, error) {
	f.mu.Lock()
	f.resizes = append(f.resizes, opts)
	f.mu.Unlock()

	var w, h int
	switch opts.Fit {
	case codec.FitCover:
		w, h = opts.Width, opts.Height
	default:
		w, h = codec.FitBox(s.Width(), s.Height(), opts.Width, opts.Height)
	}

	out := blank(len(s.Frames), w, h)
	out.Vector = s.Vector
	return out, nil
}

func (f *Fake) Flatten(s *codec.Surface, background color.Color) (*codec.Surface, error) {
	f.mu.Lock()
	f.flattens++
	f.mu.Unlock()

	img := image.NewNRGBA(image.Rect(0, 0, s.Width(), s.Height()))
	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b, _ := background.RGBA()
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = uint8(r>>8), uint8(g>>8), uint8(b>>8), 0xff
	}

	out := codec.NewSurface(img)
	out.Vector = s.Vector
	return out, nil
}

func (f *Fake) Encode(s *codec.Surface, format formats.Format, opts codec.EncodeOptions) ([]byte, error) {
	if f.FailEncode {
		return nil, ErrEncode
	}

	call := EncodeCall{
		Format:  format,
		Quality: opts.Quality,
		Effort:  opts.Effort,
		Width:   s.Width(),
		Height:  s.Height(),
		Frames:  len(s.Frames),
		Opaque:  opaque(s.First()),
	}

	f.mu.Lock()
	f.encodes = append(f.encodes, call)
	f.mu.Unlock()

	return fmt.Appendf(nil, "%s:%dx%d:q%d", format, call.Width, call.Height, call.Quality), nil
}

// Decodes returns the recorded decode options.
func (f *Fake) Decodes() []codec.DecodeOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]codec.DecodeOptions(nil), f.decodes...)
}

// Resizes returns the recorded resize options.
func (f *Fake) Resizes() []codec.ResizeOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]codec.ResizeOptions(nil), f.resizes...)
}

// Flattens returns how many times Flatten was called.
func (f *Fake) Flattens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flattens
}

// Encodes returns the recorded encode calls.
func (f *Fake) Encodes() []EncodeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]EncodeCall(nil), f.encodes...)
}

func blank(n, w, h int) *codec.Surface {
	s := &codec.Surface{
		Frames: make([]image.Image, n),
		Delays: make([]int, n),
	}
	for i := range s.Frames {
		s.Frames[i] = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	return s
}

func opaque(img image.Image) bool {
	if img == nil {
		return false
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

var _ codec.Codec = (*Fake)(nil)
