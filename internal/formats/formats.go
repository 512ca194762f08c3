// Package formats classifies image files by extension and names the raster
// formats the converter can produce.
//
// Classification never touches the filesystem: a mislabeled file is accepted
// or rejected by its name and any mismatch surfaces later as a decode error.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrInvalidFormat is returned when a requested output format is not supported.
var ErrInvalidFormat = errors.New("invalid format")

// Format is an output raster format, named by its file extension.
type Format string

// Output formats. ICO is only valid for favicon sets.
const (
	WebP Format = "webp"
	JPEG Format = "jpg"
	PNG  Format = "png"
	ICO  Format = "ico"
)

// Ext returns the file extension written for the format, without a dot.
func (f Format) Ext() string {
	return string(f)
}

// ParseTargetFormat parses a conversion target. "jpeg" is accepted as an
// alias of "jpg"; matching is case-insensitive.
func ParseTargetFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "webp":
		return WebP, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	default:
		return "", fmt.Errorf("%w: %q (must be webp, jpg, or png)", ErrInvalidFormat, s)
	}
}

// ParseFaviconFormat parses a favicon set format. An empty value selects PNG.
func ParseFaviconFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "ico":
		return ICO, nil
	default:
		return "", fmt.Errorf("%w: %q (must be png or ico)", ErrInvalidFormat, s)
	}
}

// TargetFormats lists the formats accepted by ParseTargetFormat.
func TargetFormats() []Format {
	return []Format{WebP, JPEG, PNG}
}

var readable = []string{
	"png", "jpg", "jpeg", "webp", "gif", "tiff",
	"bmp", "avif", "heic", "heif", "svg",
}

const (
	vectorExt = "svg"
	dngExt    = "dng"
)

// Classifier decides which paths are readable images.
type Classifier struct {
	exts map[string]bool
}

// NewClassifier builds a classifier for the fixed input set. DNG support is
// a deployment choice and is added only when includeDNG is set.
func NewClassifier(includeDNG bool) *Classifier {
	exts := make(map[string]bool, len(readable)+1)
	for _, ext := range readable {
		exts[ext] = true
	}
	if includeDNG {
		exts[dngExt] = true
	}
	return &Classifier{exts: exts}
}

// IsReadableImage reports whether the lowercase extension of path is a
// supported input format.
func (c *Classifier) IsReadableImage(path string) bool {
	return c.exts[Ext(path)]
}

// IsVectorInput reports whether path names an SVG file.
func IsVectorInput(path string) bool {
	return Ext(path) == vectorExt
}

// Extensions returns the supported input extensions in sorted order.
func (c *Classifier) Extensions() []string {
	exts := make([]string, 0, len(c.exts))
	for ext := range c.exts {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Ext returns the lowercase extension of path without its leading dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
