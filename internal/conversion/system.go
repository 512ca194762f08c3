// Package conversion turns selected image files into new raster files. It
// owns the per-file pipelines (convert and favicon set) and hands batches to
// the batch runner; decoding, resizing and encoding are delegated to a codec.
package conversion

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/image-forge/internal/batch"
	"github.com/JaimeStill/image-forge/internal/codec"
	"github.com/JaimeStill/image-forge/internal/config"
	"github.com/JaimeStill/image-forge/internal/formats"
	"github.com/JaimeStill/image-forge/internal/storage"
)

// Batch operation names recorded on reports.
const (
	OperationConvert  = "convert"
	OperationFavicons = "favicons"
)

// System defines the conversion operations.
type System interface {
	// Classifier returns the input classifier in use.
	Classifier() *formats.Classifier

	// Formats describes the accepted inputs and producible outputs.
	Formats() FormatInfo

	// Convert re-encodes file per opts, replacing the source with the
	// output, and returns the output path.
	Convert(ctx context.Context, file formats.File, opts ConversionOptions) (string, error)

	// GenerateFavicons writes a favicon set for file into the favicon
	// directory beside it and returns the paths written. The source is kept.
	GenerateFavicons(ctx context.Context, file formats.File, opts FaviconOptions) ([]string, error)

	// ConvertBatch validates opts once and converts every file concurrently.
	// Per-file failures are reported, never returned.
	ConvertBatch(ctx context.Context, files []formats.File, opts ConversionOptions) (*batch.Report, error)

	// FaviconBatch validates opts once and generates a favicon set for every file.
	FaviconBatch(ctx context.Context, files []formats.File, opts FaviconOptions) (*batch.Report, error)
}

// FormatInfo lists what the converter reads and writes.
type FormatInfo struct {
	Inputs         []string `json:"inputs"`
	Targets        []string `json:"targets"`
	FaviconFormats []string `json:"favicon_formats"`
	FaviconSizes   []int    `json:"favicon_sizes"`
	DefaultQuality int      `json:"default_quality"`
}

type converter struct {
	cfg        *config.ConversionConfig
	classifier *formats.Classifier
	codec      codec.Codec
	storage    storage.System
	runner     *batch.Runner
	logger     *slog.Logger
}

// New creates a conversion system.
func New(
	cfg *config.ConversionConfig,
	codec codec.Codec,
	store storage.System,
	runner *batch.Runner,
	logger *slog.Logger,
) System {
	return &converter{
		cfg:        cfg,
		classifier: formats.NewClassifier(cfg.DNGReadable()),
		codec:      codec,
		storage:    store,
		runner:     runner,
		logger:     logger.With("system", "conversion"),
	}
}

func (c *converter) Classifier() *formats.Classifier {
	return c.classifier
}

func (c *converter) Formats() FormatInfo {
	targets := make([]string, 0, 3)
	for _, f := range formats.TargetFormats() {
		targets = append(targets, string(f))
	}
	return FormatInfo{
		Inputs:         c.classifier.Extensions(),
		Targets:        targets,
		FaviconFormats: []string{string(formats.PNG), string(formats.ICO)},
		FaviconSizes:   DefaultFaviconSizes,
		DefaultQuality: c.cfg.DefaultQuality,
	}
}

func (c *converter) Convert(ctx context.Context, file formats.File, opts ConversionOptions) (string, error) {
	plan, err := opts.plan(c.cfg.DefaultQuality)
	if err != nil {
		return "", err
	}
	return c.convert(ctx, file, plan)
}

func (c *converter) GenerateFavicons(ctx context.Context, file formats.File, opts FaviconOptions) ([]string, error) {
	plan, err := opts.plan(c.cfg.DefaultQuality)
	if err != nil {
		return nil, err
	}
	return c.favicons(ctx, file, plan)
}

func (c *converter) ConvertBatch(ctx context.Context, files []formats.File, opts ConversionOptions) (*batch.Report, error) {
	plan, err := opts.plan(c.cfg.DefaultQuality)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNothingSelected
	}

	owners := claimOutputs(files, plan.format)

	c.logger.Info("converting", "files", len(files), "format", plan.format, "quality", plan.quality)
	return c.runner.Run(ctx, OperationConvert, files, func(ctx context.Context, f formats.File) ([]string, error) {
		if owner := owners[outputKey(f.WithExt(plan.format.Ext()))]; owner != f.Path() {
			return nil, fmt.Errorf("%w: %s also writes %s", ErrOutputCollision, owner, f.WithExt(plan.format.Ext()))
		}
		out, err := c.convert(ctx, f, plan)
		if err != nil {
			return nil, err
		}
		return []string{out}, nil
	}), nil
}

func (c *converter) FaviconBatch(ctx context.Context, files []formats.File, opts FaviconOptions) (*batch.Report, error) {
	plan, err := opts.plan(c.cfg.DefaultQuality)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNothingSelected
	}

	c.logger.Info("generating favicons", "files", len(files), "sizes", plan.sizes, "format", plan.format)
	return c.runner.Run(ctx, OperationFavicons, files, func(ctx context.Context, f formats.File) ([]string, error) {
		return c.favicons(ctx, f, plan)
	}), nil
}

// claimOutputs maps each output path to the first selected file that writes
// it. Later files with the same output are left untouched.
func claimOutputs(files []formats.File, format formats.Format) map[string]string {
	owners := make(map[string]string, len(files))
	for _, f := range files {
		key := outputKey(f.WithExt(format.Ext()))
		if _, ok := owners[key]; !ok {
			owners[key] = f.Path()
		}
	}
	return owners
}

// outputKey folds case so sources differing only in case collide on
// case-insensitive filesystems too.
func outputKey(path string) string {
	return strings.ToLower(filepath.Clean(path))
}
