package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	lib     string
	workers int
	quiet   bool
	verbose bool
}

// mathFlags holds HTML rendering flags.
type mathFlags struct {
	math     string
	basePath string
}

// styleFlags holds post-processing flags for HTML output.
type styleFlags struct {
	style     string
	highlight bool
	hlStyle   string
	css       string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	math       mathFlags
	style      styleFlags
	standalone bool
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	paper         string
	fontSize      int
	titlePage     bool
	noPageNumbers bool
	title         string
}

// pdfFlags holds all flags for the pdf command.
type pdfFlags struct {
	common  commonFlags
	output  string
	math    mathFlags
	style   styleFlags
	page    pageFlags
	engine  string
	direct  bool
	timeout string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.lib, "lib", "", "path to the markdown-academic library")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

func addMathFlags(fs *flag.FlagSet, f *mathFlags, defaultMath string) {
	fs.StringVarP(&f.math, "math", "m", defaultMath, "math backend: katex, mathjax, mathml")
	fs.StringVar(&f.basePath, "base-path", "", "directory for relative paths (default: input's directory)")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "named style sheet (academic, plain, or one from render.styleDir)")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight fenced code blocks")
	fs.StringVar(&f.hlStyle, "highlight-style", "", "chroma style for --highlight")
	fs.StringVar(&f.css, "css", "", "CSS file injected into standalone HTML")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.paper, "paper", "p", "", "paper size: letter, a4")
	fs.IntVar(&f.fontSize, "font-size", 0, "body font size in points")
	fs.BoolVar(&f.titlePage, "title-page", false, "add a title page")
	fs.BoolVar(&f.noPageNumbers, "no-page-numbers", false, "omit page numbers")
	fs.StringVar(&f.title, "title", "", "document title (default: first H1, then file name)")
}

// newRenderFlagSet registers the render flags into f. Completion reuses it.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (- for stdout)")
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "emit a full HTML document")
	addCommonFlags(fs, &f.common)
	addMathFlags(fs, &f.math, "")
	addStyleFlags(fs, &f.style)
	return fs
}

// newPDFFlagSet registers the pdf flags into f. Completion reuses it.
func newPDFFlagSet(f *pdfFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("pdf", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.engine, "engine", "e", "", "PDF engine: native, chrome, auto")
	fs.BoolVar(&f.direct, "direct", false, "let the native engine write the file")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout for the chrome engine (e.g. 30s)")
	addCommonFlags(fs, &f.common)
	addMathFlags(fs, &f.math, "")
	addStyleFlags(fs, &f.style)
	addPageFlags(fs, &f.page)
	return fs
}

func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

func parsePDFFlags(args []string, stderr io.Writer) (*pdfFlags, []string, error) {
	f := &pdfFlags{}
	fs := newPDFFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printPDFUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return f, fs.Args(), nil
}
