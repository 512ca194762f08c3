package conversion

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/JaimeStill/image-forge/internal/codec"
	"github.com/JaimeStill/image-forge/internal/formats"
)

const (
	legacyFaviconSize = 16
	legacyFaviconName = "favicon.ico"
)

func faviconName(size int) string {
	return fmt.Sprintf("favicon-%dx%d.%s", size, size, formats.PNG.Ext())
}

func (c *converter) favicons(ctx context.Context, file formats.File, plan faviconPlan) ([]string, error) {
	if err := c.checkInput(file); err != nil {
		return nil, err
	}

	dir := filepath.Join(file.Dir(), c.cfg.FaviconDir)
	if err := c.storage.EnsureDir(ctx, dir); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(plan.sizes)+1)
	for _, size := range plan.sizes {
		data, err := c.renderFavicon(ctx, file, size, plan, formats.PNG)
		if err != nil {
			return written, err
		}

		out := filepath.Join(dir, faviconName(size))
		if err := c.storage.Write(ctx, out, data); err != nil {
			return written, err
		}
		written = append(written, out)
	}

	if slices.Contains(plan.sizes, legacyFaviconSize) {
		// favicon.ico holds PNG bytes unless strict ICO output is configured.
		encoding := formats.PNG
		if c.cfg.StrictICO {
			encoding = formats.ICO
		}

		data, err := c.renderFavicon(ctx, file, legacyFaviconSize, plan, encoding)
		if err != nil {
			return written, err
		}

		out := filepath.Join(dir, legacyFaviconName)
		if err := c.storage.Write(ctx, out, data); err != nil {
			return written, err
		}
		written = append(written, out)
	}

	c.logger.Debug("favicons generated", "source", file.Path(), "files", len(written))
	return written, nil
}

// renderFavicon runs one independent decode, cover-crop and encode pass.
// Only the ico request on a vector source is flattened; png keeps alpha.
func (c *converter) renderFavicon(ctx context.Context, file formats.File, size int, plan faviconPlan, encoding formats.Format) ([]byte, error) {
	s, err := c.codec.Decode(ctx, file.Path(), codec.DecodeOptions{Animated: false})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	s, err = c.codec.Resize(s, codec.ResizeOptions{
		Width:   size,
		Height:  size,
		Fit:     codec.FitCover,
		Enlarge: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResize, err)
	}

	if plan.format == formats.ICO && file.IsVector() {
		if s, err = c.codec.Flatten(s, flattenBackground); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}

	data, err := c.codec.Encode(s, encoding, codec.EncodeOptions{
		Quality: plan.quality,
		Effort:  codec.EffortMax,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}
