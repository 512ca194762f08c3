package conversion

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/JaimeStill/image-forge/internal/codec"
	"github.com/JaimeStill/image-forge/internal/formats"
	"github.com/docker/go-units"
)

// flattenBackground is composited under transparent vector renders for
// formats without alpha.
var flattenBackground = color.White

func (c *converter) convert(ctx context.Context, file formats.File, plan conversionPlan) (string, error) {
	if err := c.checkInput(file); err != nil {
		return "", err
	}

	out := file.WithExt(plan.format.Ext())

	s, err := c.codec.Decode(ctx, file.Path(), codec.DecodeOptions{Animated: true})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if s.Animated() && !codec.CarriesAnimation(plan.format) {
		c.logger.Warn("animation dropped", "source", file.Path(), "format", plan.format, "frames", len(s.Frames))
		s = s.Still()
	}

	if plan.resizes() {
		s, err = c.codec.Resize(s, codec.ResizeOptions{
			Width:  plan.maxWidth,
			Height: plan.maxHeight,
			Fit:    codec.FitInside,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrResize, err)
		}
	}

	if plan.format == formats.JPEG && file.IsVector() {
		if s, err = c.codec.Flatten(s, flattenBackground); err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}

	data, err := c.codec.Encode(s, plan.format, codec.EncodeOptions{Quality: plan.quality})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}

	// Decode has already read the source, so replacing it in place is safe.
	if err := c.storage.Replace(ctx, file.Path(), out, data); err != nil {
		return "", err
	}

	c.logger.Debug("converted", "source", file.Path(), "output", out, "size", units.HumanSize(float64(len(data))))
	return out, nil
}

// checkInput rejects unreadable extensions before any I/O, then enforces
// the configured input size ceiling.
func (c *converter) checkInput(file formats.File) error {
	if !c.classifier.IsReadableImage(file.Path()) {
		return fmt.Errorf("%w: .%s", ErrUnsupportedFormat, file.Ext())
	}

	limit := c.cfg.MaxInputSizeBytes()
	if limit <= 0 {
		return nil
	}

	info, err := os.Stat(file.Path())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if info.Size() > limit {
		return fmt.Errorf("%w: %s is %s (limit %s)", ErrInputTooLarge,
			file.Path(), units.HumanSize(float64(info.Size())), units.HumanSize(float64(limit)))
	}
	return nil
}
