package conversion

import (
	"fmt"

	"github.com/JaimeStill/image-forge/internal/codec"
	"github.com/JaimeStill/image-forge/internal/formats"
)

// ConversionOptions are the user-facing parameters of a conversion. A zero
// MaxWidth or MaxHeight leaves that axis unconstrained; when both are zero
// the image keeps its dimensions. A nil Quality uses the configured default.
type ConversionOptions struct {
	Format    string `json:"format"`
	MaxWidth  int    `json:"max_width,omitempty"`
	MaxHeight int    `json:"max_height,omitempty"`
	Quality   *int   `json:"quality,omitempty"`
}

// FaviconOptions are the user-facing parameters of a favicon set. Sizes are
// rendered in the order given; duplicates are rendered again.
type FaviconOptions struct {
	Sizes   []int  `json:"sizes"`
	Format  string `json:"format,omitempty"`
	Quality *int   `json:"quality,omitempty"`
}

// DefaultFaviconSizes is used by callers that collect no sizes.
var DefaultFaviconSizes = []int{16, 32, 48, 64, 128, 180, 192, 512}

type conversionPlan struct {
	format    formats.Format
	maxWidth  int
	maxHeight int
	quality   int
}

func (p conversionPlan) resizes() bool {
	return p.maxWidth > 0 || p.maxHeight > 0
}

type faviconPlan struct {
	sizes   []int
	format  formats.Format
	quality int
}

func (o ConversionOptions) plan(defaultQuality int) (conversionPlan, error) {
	format, err := formats.ParseTargetFormat(o.Format)
	if err != nil {
		return conversionPlan{}, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	if o.MaxWidth < 0 {
		return conversionPlan{}, fmt.Errorf("%w: max_width must not be negative: %d", ErrInvalidOption, o.MaxWidth)
	}
	if o.MaxHeight < 0 {
		return conversionPlan{}, fmt.Errorf("%w: max_height must not be negative: %d", ErrInvalidOption, o.MaxHeight)
	}

	return conversionPlan{
		format:    format,
		maxWidth:  o.MaxWidth,
		maxHeight: o.MaxHeight,
		quality:   quality(o.Quality, defaultQuality),
	}, nil
}

func (o FaviconOptions) plan(defaultQuality int) (faviconPlan, error) {
	format, err := formats.ParseFaviconFormat(o.Format)
	if err != nil {
		return faviconPlan{}, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	if len(o.Sizes) == 0 {
		return faviconPlan{}, fmt.Errorf("%w: at least one favicon size is required", ErrInvalidOption)
	}
	for _, s := range o.Sizes {
		if s <= 0 {
			return faviconPlan{}, fmt.Errorf("%w: favicon size must be positive: %d", ErrInvalidOption, s)
		}
	}

	return faviconPlan{
		sizes:   o.Sizes,
		format:  format,
		quality: quality(o.Quality, defaultQuality),
	}, nil
}

func quality(q *int, fallback int) int {
	if q == nil {
		return codec.ClampQuality(fallback)
	}
	return codec.ClampQuality(*q)
}
