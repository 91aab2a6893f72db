package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds output verbosity and config selection.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	debug   bool
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// styleFlags holds stylesheet flags.
type styleFlags struct {
	style     string // name, CSS file path or inline CSS
	css       string // extra CSS file appended after the style
	assetPath string
	noStyle   bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	input    string
	output   string
	encoding string
	pdf      bool
	workers  int
	timeout  string
	page     pageFlags
	style    styleFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log conversion timing")
	fs.BoolVarP(&f.debug, "debug", "d", false, "log parser and pipeline details")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "PDF page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "PDF orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "PDF margin in inches (0.25-3.0)")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "style name, CSS file path or inline CSS")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/*.css")
	fs.BoolVar(&f.noStyle, "no-style", false, "inject no stylesheet")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Parse errors and usage are written to stderr.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	fs.StringVarP(&f.input, "input", "i", "", "QTF file or directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory or .html file")
	fs.StringVarP(&f.encoding, "encoding", "e", "", "source charset, e.g. windows-1252 (default utf-8)")
	fs.BoolVar(&f.pdf, "pdf", false, "also render a PDF next to each HTML file")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF rendering timeout per file (e.g. 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addStyleFlags(fs, &f.style)

	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
