package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func runFormats(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("formats", flag.ContinueOnError)
	configPath := fs.String("config", "", "Configuration file (default config.toml)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(*configPath)
	if err != nil {
		return err
	}
	defer s.close()

	info := s.domain.Conversion.Formats()

	sizes := make([]string, len(info.FaviconSizes))
	for i, n := range info.FaviconSizes {
		sizes[i] = strconv.Itoa(n)
	}

	fmt.Fprintf(stdout, "inputs:    %s\n", strings.Join(info.Inputs, ", "))
	fmt.Fprintf(stdout, "targets:   %s\n", strings.Join(info.Targets, ", "))
	fmt.Fprintf(stdout, "favicons:  %s (sizes %s)\n", strings.Join(info.FaviconFormats, ", "), strings.Join(sizes, ", "))
	fmt.Fprintf(stdout, "quality:   %d\n", info.DefaultQuality)
	return nil
}
