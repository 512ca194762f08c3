// Command imgconv converts selected images in place and generates favicon
// sets. The serve subcommand exposes the same operations over HTTP for
// editor front-ends.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JaimeStill/image-forge/internal/conversion"
)

// errFilesFailed marks a batch that finished with at least one failure.
// The report has already been printed, so main only sets the exit code.
var errFilesFailed = errors.New("one or more files failed")

type command struct {
	name    string
	summary string
	run     func(args []string, stdout io.Writer) error
}

var commands = []command{
	{"convert", "convert selected images to webp, jpg or png", runConvert},
	{"favicons", "generate a favicon set from each selected image", runFavicons},
	{"formats", "list accepted inputs and producible outputs", runFormats},
	{"serve", "serve the conversion API over HTTP", runServe},
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	name := os.Args[1]
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		os.Exit(exitCode(cmd.run(os.Args[2:], os.Stdout)))
	}

	if name != "-h" && name != "-help" && name != "help" {
		fmt.Fprintf(os.Stderr, "imgconv: unknown command %q\n\n", name)
	}
	usage(os.Stderr)
	os.Exit(2)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFilesFailed):
		return 1
	case errors.Is(err, conversion.ErrNothingSelected):
		fmt.Fprintln(os.Stderr, "imgconv: no supported image files selected")
		return 1
	default:
		fmt.Fprintf(os.Stderr, "imgconv: %v\n", err)
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: imgconv <command> [flags] [paths...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.name, cmd.summary)
	}
}
