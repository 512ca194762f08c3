package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/image-forge/internal/batch"
	"github.com/JaimeStill/image-forge/internal/conversion"
	"github.com/JaimeStill/image-forge/internal/selection"
)

func runConvert(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	var (
		configPath = fs.String("config", "", "Configuration file (default config.toml)")
		format     = fs.String("format", "webp", "Target format: webp, jpg or png")
		maxWidth   = fs.Int("max-width", 0, "Maximum output width in pixels (0 keeps the source width)")
		maxHeight  = fs.Int("max-height", 0, "Maximum output height in pixels (0 keeps the source height)")
		active     = fs.String("active", "", "Active file, used when no paths are given")
		quality    optionalInt
	)
	fs.Var(&quality, "quality", "Encoder quality 1-100, clamped (default from config)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: imgconv convert [flags] <paths...>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := conversion.ConversionOptions{
		Format:    *format,
		MaxWidth:  *maxWidth,
		MaxHeight: *maxHeight,
		Quality:   quality.Value(),
	}
	req := selection.Request{Paths: fs.Args(), Active: *active}

	return withSession(*configPath, stdout, func(ctx context.Context, s *session) (*batch.Report, error) {
		files := selection.Resolve(req, s.domain.Conversion.Classifier())
		return s.domain.Conversion.ConvertBatch(ctx, files, opts)
	})
}

func runFavicons(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("favicons", flag.ContinueOnError)
	sizes := sizeList(append([]int(nil), conversion.DefaultFaviconSizes...))
	var (
		configPath = fs.String("config", "", "Configuration file (default config.toml)")
		format     = fs.String("format", "png", "Favicon format: png or ico")
		active     = fs.String("active", "", "Active file, used when no paths are given")
		quality    optionalInt
	)
	fs.Var(&sizes, "sizes", "Comma separated favicon sizes")
	fs.Var(&quality, "quality", "Encoder quality 1-100, clamped (default from config)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: imgconv favicons [flags] <paths...>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := conversion.FaviconOptions{
		Sizes:   sizes,
		Format:  *format,
		Quality: quality.Value(),
	}
	req := selection.Request{Paths: fs.Args(), Active: *active}

	return withSession(*configPath, stdout, func(ctx context.Context, s *session) (*batch.Report, error) {
		files := selection.Resolve(req, s.domain.Conversion.Classifier())
		return s.domain.Conversion.FaviconBatch(ctx, files, opts)
	})
}

// withSession runs one batch against a fresh session, prints its report, and
// cancels in-flight work on SIGINT or SIGTERM.
func withSession(configPath string, stdout io.Writer, run func(context.Context, *session) (*batch.Report, error)) error {
	s, err := openSession(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.close(); err != nil {
			s.infra.Logger.Error("shutdown failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := run(ctx, s)
	if err != nil {
		return err
	}

	if err := report.WriteText(stdout); err != nil {
		return err
	}
	if report.Failed() {
		return errFilesFailed
	}
	return nil
}
