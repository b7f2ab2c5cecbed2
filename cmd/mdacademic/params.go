package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdacademic"
	"github.com/alnah/go-mdacademic/internal/assets"
	"github.com/alnah/go-mdacademic/internal/chrome"
	"github.com/alnah/go-mdacademic/internal/config"
	"github.com/alnah/go-mdacademic/internal/hints"
	"github.com/alnah/go-mdacademic/internal/native"
	"github.com/alnah/go-mdacademic/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadCSS      = errors.New("failed to read CSS file")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrStdoutBatch  = errors.New("stdout output needs a single input file")
)

// defaultPrintStyle dresses HTML printed by the chrome engine.
const defaultPrintStyle = "academic"

// htmlParams holds what every file of a render batch shares.
type htmlParams struct {
	render      mdacademic.RenderConfig
	highlighter *pipeline.Highlighter // nil = no highlighting
	css         string                // injected into standalone output
}

// pdfParams holds what every file of a pdf batch shares.
type pdfParams struct {
	engine  string // native or chrome, resolved
	direct  bool
	pdf     mdacademic.PdfConfig
	html    htmlParams // chrome engine only
	paper   chrome.Paper
	timeout time.Duration
}

// loadConfig reads the config named by flag, or returns defaults.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		var nf *config.NotFoundError
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nf.Searched))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyLibraryPath exports the library location before the engine is first
// used. Precedence: --lib, then an existing MARKDOWN_ACADEMIC_LIB, then the
// config file.
func applyLibraryPath(flagLib string, cfg *config.Config, env *Environment) error {
	path := flagLib
	if path == "" && env.Getenv(native.EnvLibraryPath) == "" {
		path = cfg.Library.Path
	}
	if path == "" {
		return nil
	}
	env.Logger.Debug("library override", "path", path)
	return env.Setenv(native.EnvLibraryPath, path)
}

// mergeRenderFlags merges CLI flags into config. CLI values win.
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	mergeMathFlags(f.math, cfg)
	mergeStyleFlags(f.style, cfg)
	if f.standalone {
		cfg.Render.Standalone = true
	}
	if f.common.workers != 0 {
		cfg.Workers = f.common.workers
	}
}

// mergePDFFlags merges CLI flags into config. CLI values win.
func mergePDFFlags(f *pdfFlags, cfg *config.Config) {
	mergeMathFlags(f.math, cfg)
	mergeStyleFlags(f.style, cfg)
	if f.engine != "" {
		cfg.PDF.Engine = f.engine
	}
	if f.direct {
		cfg.PDF.Direct = true
	}
	if f.page.paper != "" {
		cfg.PDF.Paper = f.page.paper
	}
	if f.page.fontSize != 0 {
		cfg.PDF.FontSize = f.page.fontSize
	}
	if f.page.titlePage {
		cfg.PDF.TitlePage = true
	}
	if f.page.noPageNumbers {
		off := false
		cfg.PDF.PageNumbers = &off
	}
	if f.page.title != "" {
		cfg.PDF.Title = f.page.title
	}
	if f.common.workers != 0 {
		cfg.Workers = f.common.workers
	}
}

func mergeMathFlags(f mathFlags, cfg *config.Config) {
	if f.math != "" {
		cfg.Render.Math = f.math
	}
	if f.basePath != "" {
		cfg.Render.BasePath = f.basePath
	}
}

func mergeStyleFlags(f styleFlags, cfg *config.Config) {
	if f.style != "" {
		cfg.Render.Style = f.style
	}
	if f.highlight {
		cfg.Render.Highlight = true
	}
	if f.hlStyle != "" {
		cfg.Render.HighlightStyle = f.hlStyle
	}
	if f.css != "" {
		cfg.Render.CSS = f.css
	}
}

// buildHTMLParams resolves render settings and reads the style sheet.
func buildHTMLParams(cfg *config.Config) (htmlParams, error) {
	if err := cfg.Validate(); err != nil {
		return htmlParams{}, err
	}
	backend, err := mdacademic.ParseMathBackend(cfg.Render.Math)
	if err != nil {
		return htmlParams{}, err
	}

	p := htmlParams{
		render: mdacademic.RenderConfig{
			MathBackend: backend,
			Standalone:  cfg.Render.Standalone,
			BasePath:    cfg.Render.BasePath,
		},
	}

	var css []string
	if cfg.Render.Style != "" {
		resolver, err := assets.NewResolver(cfg.Render.StyleDir)
		if err != nil {
			return htmlParams{}, err
		}
		style, err := resolver.LoadStyle(cfg.Render.Style)
		if err != nil {
			return htmlParams{}, err
		}
		css = append(css, style)
	}
	if cfg.Render.Highlight {
		p.highlighter = pipeline.NewHighlighter(cfg.Render.HighlightStyle)
		hl, err := p.highlighter.CSS()
		if err != nil {
			return htmlParams{}, err
		}
		css = append(css, hl)
	}
	if cfg.Render.CSS != "" {
		data, err := os.ReadFile(cfg.Render.CSS) // #nosec G304 -- user-provided style sheet
		if err != nil {
			return htmlParams{}, fmt.Errorf("%w: %w", ErrReadCSS, err)
		}
		css = append(css, string(data))
	}
	p.css = strings.Join(css, "\n")
	return p, nil
}

// buildPDFParams resolves PDF settings and picks the engine.
func buildPDFParams(cfg *config.Config, timeoutFlag string, eng Engine) (pdfParams, error) {
	if err := cfg.Validate(); err != nil {
		return pdfParams{}, err
	}
	engine, err := resolveEngine(cfg.PDF.Engine, eng)
	if err != nil {
		return pdfParams{}, err
	}
	if cfg.PDF.Direct && engine != config.EngineNative {
		return pdfParams{}, fmt.Errorf("%w: --direct requires the native engine", ErrUsage)
	}

	// Chrome prints MathML without running scripts.
	if engine == config.EngineChrome && strings.EqualFold(cfg.Render.Math, "katex") {
		cfg.Render.Math = "mathml"
	}
	if engine == config.EngineChrome && cfg.Render.Style == "" {
		cfg.Render.Style = defaultPrintStyle
	}
	cfg.Render.Standalone = true

	html, err := buildHTMLParams(cfg)
	if err != nil {
		return pdfParams{}, err
	}
	paperSize, err := mdacademic.ParsePaperSize(cfg.PDF.Paper)
	if err != nil {
		return pdfParams{}, err
	}
	paper, err := chrome.LookupPaper(cfg.PDF.Paper)
	if err != nil {
		return pdfParams{}, err
	}
	timeout, err := parseTimeout(timeoutFlag)
	if err != nil {
		return pdfParams{}, err
	}

	return pdfParams{
		engine: engine,
		direct: cfg.PDF.Direct,
		pdf: mdacademic.PdfConfig{
			PaperSize:   paperSize,
			FontSize:    cfg.PDF.FontSize,
			TitlePage:   cfg.PDF.TitlePage,
			PageNumbers: cfg.PageNumbers(),
			Title:       cfg.PDF.Title,
			BasePath:    cfg.Render.BasePath,
		},
		html:    html,
		paper:   paper,
		timeout: timeout,
	}, nil
}

// resolveEngine maps auto to native when the engine has PDF support. An
// explicit native request without PDF support fails with a hint.
func resolveEngine(name string, eng Engine) (string, error) {
	switch strings.ToLower(name) {
	case config.EngineChrome:
		return config.EngineChrome, nil
	case config.EngineNative:
		info, err := eng.Info()
		if err != nil {
			return "", libraryError(err)
		}
		if !info.PDF {
			return "", fmt.Errorf("%w%s", mdacademic.ErrPDFUnavailable, hints.ForPDFUnavailable())
		}
		return config.EngineNative, nil
	default:
		info, err := eng.Info()
		if err != nil {
			return "", libraryError(err)
		}
		if info.PDF {
			return config.EngineNative, nil
		}
		return config.EngineChrome, nil
	}
}

// libraryError appends locator hints to load failures.
func libraryError(err error) error {
	if errors.Is(err, mdacademic.ErrLibraryLoad) || errors.Is(err, mdacademic.ErrUnsupportedPlatform) {
		searched, _ := native.DefaultLocator().Candidates()
		return fmt.Errorf("%w%s", err, hints.ForLibraryLoad(searched))
	}
	return err
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: invalid timeout %q", ErrUsage, s)
	}
	return d, nil
}

// documentTitle picks the PDF title: configured, first H1, then file name.
func documentTitle(configured, markdown, path string) string {
	if configured != "" {
		return configured
	}
	if t := pipeline.ExtractTitle(markdown); t != "" {
		return t
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// basePathFor defaults the base path to the directory of the input file.
func basePathFor(configured, inputPath string) string {
	if configured != "" {
		return configured
	}
	if abs, err := filepath.Abs(inputPath); err == nil {
		return filepath.Dir(abs)
	}
	return filepath.Dir(inputPath)
}
