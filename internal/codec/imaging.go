package codec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	ico "github.com/biessek/golang-ico"
	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/JaimeStill/image-forge/internal/formats"
)

// defaultVectorSize is the raster edge used for SVGs without a usable viewBox.
const defaultVectorSize = 512

type imagingCodec struct{}

// NewImaging returns the production codec. Decoding covers PNG, JPEG, GIF
// (optionally every frame), BMP, TIFF, WebP and SVG; AVIF, HEIC, HEIF and DNG
// have no registered decoder and fail at decode time.
func NewImaging() Codec {
	return &imagingCodec{}
}

func (c *imagingCodec) Decode(ctx context.Context, path string, opts DecodeOptions) (*Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch formats.Ext(path) {
	case "svg":
		img, err := rasterizeSVG(path)
		if err != nil {
			return nil, err
		}
		return &Surface{Frames: []image.Image{img}, Vector: true}, nil
	case "gif":
		if opts.Animated {
			return decodeAnimatedGIF(path)
		}
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return NewSurface(img), nil
}

func (c *imagingCodec) Resize(s *Surface, opts ResizeOptions) (*Surface, error) {
	if len(s.Frames) == 0 {
		return nil, fmt.Errorf("resize: empty surface")
	}

	srcW, srcH := s.Width(), s.Height()

	var resize func(image.Image) image.Image

	switch opts.Fit {
	case FitCover:
		if opts.Width <= 0 || opts.Height <= 0 {
			return nil, fmt.Errorf("resize: cover requires width and height, got %dx%d", opts.Width, opts.Height)
		}
		w, h := opts.Width, opts.Height
		if !opts.Enlarge {
			w, h = min(w, srcW), min(h, srcH)
		}
		resize = func(img image.Image) image.Image {
			return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
		}
	case FitInside, "":
		w, h := FitBox(srcW, srcH, opts.Width, opts.Height)
		if opts.Enlarge && opts.Width > 0 && opts.Height > 0 {
			w, h = enlargeBox(srcW, srcH, opts.Width, opts.Height)
		}
		if w == srcW && h == srcH {
			return s, nil
		}
		resize = func(img image.Image) image.Image {
			return imaging.Resize(img, w, h, imaging.Lanczos)
		}
	default:
		return nil, fmt.Errorf("resize: unknown fit %q", opts.Fit)
	}

	out := &Surface{
		Frames: make([]image.Image, len(s.Frames)),
		Delays: s.Delays,
		Vector: s.Vector,
	}
	for i, frame := range s.Frames {
		out.Frames[i] = resize(frame)
	}
	return out, nil
}

func (c *imagingCodec) Flatten(s *Surface, background color.Color) (*Surface, error) {
	out := &Surface{
		Frames: make([]image.Image, len(s.Frames)),
		Delays: s.Delays,
		Vector: s.Vector,
	}
	for i, frame := range s.Frames {
		b := frame.Bounds()
		canvas := imaging.New(b.Dx(), b.Dy(), background)
		out.Frames[i] = imaging.Overlay(canvas, frame, image.Pt(0, 0), 1.0)
	}
	return out, nil
}

// Encode writes every frame for WebP and the first frame for the other
// formats.
func (c *imagingCodec) Encode(s *Surface, format formats.Format, opts EncodeOptions) ([]byte, error) {
	frame := s.First()
	if frame == nil {
		return nil, fmt.Errorf("encode: empty surface")
	}

	quality := ClampQuality(opts.Quality)

	var buf bytes.Buffer
	var err error

	switch format {
	case formats.JPEG:
		err = imaging.Encode(&buf, frame, imaging.JPEG, imaging.JPEGQuality(quality))
	case formats.PNG:
		err = imaging.Encode(&buf, frame, imaging.PNG, imaging.PNGCompressionLevel(pngCompression(quality, opts.Effort)))
	case formats.WebP:
		var options *encoder.Options
		options, err = encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
		if err != nil {
			break
		}
		if s.Animated() {
			var data []byte
			if data, err = encodeAnimatedWebP(s, options); err == nil {
				return data, nil
			}
			break
		}
		err = webp.Encode(&buf, frame, options)
	case formats.ICO:
		err = ico.Encode(&buf, frame)
	default:
		return nil, fmt.Errorf("encode: unsupported format %q", format)
	}

	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// pngCompression maps quality onto zlib levels. PNG stays lossless either way.
func pngCompression(quality int, effort Effort) png.CompressionLevel {
	switch {
	case effort == EffortMax || quality > 90:
		return png.BestCompression
	case quality <= 50:
		return png.BestSpeed
	default:
		return png.DefaultCompression
	}
}

func enlargeBox(w, h, maxW, maxH int) (int, int) {
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(int(float64(w)*scale+0.5), 1), max(int(float64(h)*scale+0.5), 1)
}
