package main

// Notes:
// - merge*Flags: CLI values override config, zero values keep config.
// - buildHTMLParams / buildPDFParams: engine resolution, the chrome MathML
//   switch, CSS loading, and validation failures.
// - applyLibraryPath: --lib, environment, and config precedence.
// - documentTitle / basePathFor / parseTimeout: fallbacks.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdacademic"
	"github.com/alnah/go-mdacademic/internal/assets"
	"github.com/alnah/go-mdacademic/internal/config"
	"github.com/alnah/go-mdacademic/internal/native"
)

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI over config
// ---------------------------------------------------------------------------

func TestMergePDFFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.PDF.Title = "From config"
	cfg.Workers = 2

	f := &pdfFlags{
		engine: "chrome",
		direct: true,
		math:   mathFlags{math: "mathml", basePath: "/refs"},
		style:  styleFlags{highlight: true, hlStyle: "monokai", css: "site.css"},
		page:   pageFlags{paper: "a4", fontSize: 12, titlePage: true, noPageNumbers: true},
	}
	mergePDFFlags(f, cfg)

	if cfg.PDF.Engine != "chrome" || !cfg.PDF.Direct {
		t.Errorf("engine/direct = %q/%v, want chrome/true", cfg.PDF.Engine, cfg.PDF.Direct)
	}
	if cfg.Render.Math != "mathml" || cfg.Render.BasePath != "/refs" {
		t.Errorf("math/basePath = %q/%q", cfg.Render.Math, cfg.Render.BasePath)
	}
	if !cfg.Render.Highlight || cfg.Render.HighlightStyle != "monokai" || cfg.Render.CSS != "site.css" {
		t.Errorf("style = %+v", cfg.Render)
	}
	if cfg.PDF.Paper != "a4" || cfg.PDF.FontSize != 12 || !cfg.PDF.TitlePage {
		t.Errorf("page = %+v", cfg.PDF)
	}
	if cfg.PageNumbers() {
		t.Error("--no-page-numbers should turn page numbers off")
	}
	if cfg.PDF.Title != "From config" {
		t.Errorf("Title = %q, empty flag should keep config", cfg.PDF.Title)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, zero flag should keep config", cfg.Workers)
	}
}

func TestMergeRenderFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	mergeRenderFlags(&renderFlags{standalone: true, common: commonFlags{workers: 3}}, cfg)

	if !cfg.Render.Standalone {
		t.Error("Standalone not merged")
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Render.Math != "katex" {
		t.Errorf("Math = %q, default should survive", cfg.Render.Math)
	}
}

// ---------------------------------------------------------------------------
// TestBuildHTMLParams
// ---------------------------------------------------------------------------

func TestBuildHTMLParams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	css := writeFile(t, dir, "site.css", "body { color: navy }")

	cfg := config.DefaultConfig()
	cfg.Render.Math = "mathjax"
	cfg.Render.Standalone = true
	cfg.Render.Highlight = true
	cfg.Render.CSS = css

	p, err := buildHTMLParams(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.render.MathBackend != mdacademic.MathMathJax || !p.render.Standalone {
		t.Errorf("render = %+v", p.render)
	}
	if p.highlighter == nil {
		t.Fatal("highlighter should be set with highlighting on")
	}
	if !strings.Contains(p.css, "color: navy") || !strings.Contains(p.css, ".chroma") {
		t.Errorf("css should hold highlight rules and the style sheet, got %q", p.css)
	}
}

func TestBuildHTMLParams_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"bad math", func(c *config.Config) { c.Render.Math = "latex" }, mdacademic.ErrInvalidMathBackend},
		{"missing css", func(c *config.Config) { c.Render.CSS = filepath.Join(t.TempDir(), "none.css") }, ErrReadCSS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			if _, err := buildHTMLParams(cfg); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildPDFParams
// ---------------------------------------------------------------------------

func TestBuildPDFParams_Native(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.PDF.Paper = "a4"
	cfg.PDF.Title = "Thesis"
	cfg.Render.BasePath = "/refs"

	p, err := buildPDFParams(cfg, "", newFakeEngine(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.engine != config.EngineNative {
		t.Errorf("engine = %q, want native", p.engine)
	}
	want := mdacademic.PdfConfig{
		PaperSize:   mdacademic.PaperA4,
		FontSize:    mdacademic.DefaultFontSize,
		PageNumbers: true,
		Title:       "Thesis",
		BasePath:    "/refs",
	}
	if p.pdf != want {
		t.Errorf("pdf = %+v, want %+v", p.pdf, want)
	}
	if !p.html.render.Standalone {
		t.Error("HTML for PDF output should be standalone")
	}
}

func TestBuildPDFParams_AutoFallsBackToChrome(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	p, err := buildPDFParams(cfg, "45s", newFakeEngine(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.engine != config.EngineChrome {
		t.Errorf("engine = %q, want chrome", p.engine)
	}
	if p.html.render.MathBackend != mdacademic.MathMathML {
		t.Errorf("math = %v, chrome should switch KaTeX to MathML", p.html.render.MathBackend)
	}
	if p.timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", p.timeout)
	}
	if p.paper.Width != 8.5 {
		t.Errorf("paper = %+v, want letter", p.paper)
	}
}

func TestBuildPDFParams_ChromeDefaultsToAcademicStyle(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.PDF.Engine = "chrome"

	p, err := buildPDFParams(cfg, "", newFakeEngine(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	academic, _ := assets.NewEmbeddedLoader().LoadStyle("academic")
	if !strings.Contains(p.html.css, academic) {
		t.Error("chrome output should carry the academic style by default")
	}
}

func TestBuildHTMLParams_NamedStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "house.css", "h1 { font-variant: small-caps }")

	cfg := config.DefaultConfig()
	cfg.Render.Style = "house"
	cfg.Render.StyleDir = dir

	p, err := buildHTMLParams(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.css != "h1 { font-variant: small-caps }" {
		t.Errorf("css = %q", p.css)
	}

	cfg.Render.Style = "gothic"
	if _, err := buildHTMLParams(cfg); !errors.Is(err, assets.ErrStyleNotFound) {
		t.Errorf("unknown style: error = %v, want ErrStyleNotFound", err)
	}
}

func TestBuildPDFParams_ChromeKeepsExplicitMathJax(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.PDF.Engine = "chrome"
	cfg.Render.Math = "mathjax"

	p, err := buildPDFParams(cfg, "", newFakeEngine(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.html.render.MathBackend != mdacademic.MathMathJax {
		t.Errorf("math = %v, want MathJax kept", p.html.render.MathBackend)
	}
}

func TestBuildPDFParams_Errors(t *testing.T) {
	t.Parallel()

	loadErr := &mdacademic.Error{Kind: mdacademic.KindLibraryLoad, Msg: "not found"}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		timeout string
		engine  *fakeEngine
		wantErr error
	}{
		{"native without pdf", func(c *config.Config) { c.PDF.Engine = "native" }, "", newFakeEngine(false), mdacademic.ErrPDFUnavailable},
		{"direct with chrome", func(c *config.Config) { c.PDF.Engine = "chrome"; c.PDF.Direct = true }, "", newFakeEngine(true), ErrUsage},
		{"bad engine", func(c *config.Config) { c.PDF.Engine = "latex" }, "", newFakeEngine(true), config.ErrInvalidEngine},
		{"bad paper", func(c *config.Config) { c.PDF.Paper = "legal" }, "", newFakeEngine(true), mdacademic.ErrInvalidPaperSize},
		{"bad timeout", func(*config.Config) {}, "soon", newFakeEngine(true), ErrUsage},
		{"library missing", func(*config.Config) {}, "", &fakeEngine{infoErr: loadErr}, mdacademic.ErrLibraryLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			if _, err := buildPDFParams(cfg, tt.timeout, tt.engine); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveEngine_PDFUnavailableHint(t *testing.T) {
	t.Parallel()

	_, err := resolveEngine("native", newFakeEngine(false))
	if err == nil || !strings.Contains(err.Error(), "--features pdf") {
		t.Errorf("error = %v, want a rebuild hint", err)
	}
}

// ---------------------------------------------------------------------------
// TestApplyLibraryPath - Precedence
// ---------------------------------------------------------------------------

func TestApplyLibraryPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		envVar  string
		cfgPath string
		want    string
	}{
		{"flag wins", "/flag.so", "/env.so", "/cfg.so", "/flag.so"},
		{"env beats config", "", "/env.so", "/cfg.so", "/env.so"},
		{"config when nothing else", "", "", "/cfg.so", "/cfg.so"},
		{"nothing set", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(newFakeEngine(true))
			if tt.envVar != "" {
				te.vars[native.EnvLibraryPath] = tt.envVar
			}
			cfg := config.DefaultConfig()
			cfg.Library.Path = tt.cfgPath

			if err := applyLibraryPath(tt.flag, cfg, te.Environment); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := te.vars[native.EnvLibraryPath]; got != tt.want {
				t.Errorf("%s = %q, want %q", native.EnvLibraryPath, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDocumentTitle / TestBasePathFor / TestParseTimeout
// ---------------------------------------------------------------------------

func TestDocumentTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
		markdown   string
		path       string
		want       string
	}{
		{"configured wins", "Given", "# Heading", "x.md", "Given"},
		{"first heading", "", "intro\n\n# On Proofs\n\n# Later", "x.md", "On Proofs"},
		{"file name", "", "no heading", filepath.Join("docs", "chapter-1.md"), "chapter-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := documentTitle(tt.configured, tt.markdown, tt.path); got != tt.want {
				t.Errorf("documentTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasePathFor(t *testing.T) {
	t.Parallel()

	if got := basePathFor("/refs", "docs/a.md"); got != "/refs" {
		t.Errorf("configured base path = %q, want /refs", got)
	}

	got := basePathFor("", filepath.Join("docs", "a.md"))
	if !filepath.IsAbs(got) || filepath.Base(got) != "docs" {
		t.Errorf("default base path = %q, want absolute .../docs", got)
	}
}

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"30s", 30 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{"0s", 0, true},
		{"-1s", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		got, err := parseTimeout(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTimeout(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimeout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
