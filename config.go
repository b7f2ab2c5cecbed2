package mdacademic

import (
	"fmt"
	"strings"
)

// MathBackend selects how math is rendered in HTML output.
type MathBackend int32

const (
	MathKaTeX   MathBackend = 0 // client-side KaTeX (default)
	MathMathJax MathBackend = 1 // client-side MathJax
	MathMathML  MathBackend = 2 // native MathML, no JavaScript
)

func (b MathBackend) String() string {
	switch b {
	case MathKaTeX:
		return "katex"
	case MathMathJax:
		return "mathjax"
	case MathMathML:
		return "mathml"
	default:
		return fmt.Sprintf("MathBackend(%d)", int32(b))
	}
}

// ParseMathBackend accepts "katex", "mathjax" or "mathml", case-insensitive.
func ParseMathBackend(s string) (MathBackend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "katex":
		return MathKaTeX, nil
	case "mathjax":
		return MathMathJax, nil
	case "mathml":
		return MathMathML, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be katex, mathjax, or mathml)", ErrInvalidMathBackend, s)
	}
}

// PaperSize selects the PDF page format.
type PaperSize int32

const (
	PaperLetter PaperSize = 0 // US Letter, 8.5x11 in (default)
	PaperA4     PaperSize = 1 // ISO A4, 210x297 mm
)

func (p PaperSize) String() string {
	switch p {
	case PaperLetter:
		return "letter"
	case PaperA4:
		return "a4"
	default:
		return fmt.Sprintf("PaperSize(%d)", int32(p))
	}
}

// ParsePaperSize accepts "letter" or "a4", case-insensitive.
func ParsePaperSize(s string) (PaperSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "letter":
		return PaperLetter, nil
	case "a4":
		return PaperA4, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be letter or a4)", ErrInvalidPaperSize, s)
	}
}

// DefaultFontSize is the PDF body font size in points.
const DefaultFontSize = 11

// RenderConfig configures HTML rendering. The zero value is the default
// configuration. An empty BasePath means "not set".
type RenderConfig struct {
	MathBackend MathBackend
	Standalone  bool   // full HTML document with DOCTYPE, head and body
	BasePath    string // directory for relative paths such as bibliography files
}

// DefaultRenderConfig returns {KaTeX, fragment, no base path}.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{MathBackend: MathKaTeX}
}

// Validate rejects backends the engine does not know.
func (c RenderConfig) Validate() error {
	switch c.MathBackend {
	case MathKaTeX, MathMathJax, MathMathML:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidMathBackend, int32(c.MathBackend))
	}
}

// PdfConfig configures PDF output. Start from DefaultPdfConfig: the zero
// value disables page numbers. A zero FontSize means DefaultFontSize; empty
// Title and BasePath mean "not set".
type PdfConfig struct {
	PaperSize   PaperSize
	FontSize    int
	TitlePage   bool
	PageNumbers bool
	Title       string // PDF metadata title
	BasePath    string
}

// DefaultPdfConfig returns Letter paper, 11pt, page numbers, no title page.
func DefaultPdfConfig() PdfConfig {
	return PdfConfig{
		PaperSize:   PaperLetter,
		FontSize:    DefaultFontSize,
		PageNumbers: true,
	}
}

// Validate checks the paper size and font size.
func (c PdfConfig) Validate() error {
	switch c.PaperSize {
	case PaperLetter, PaperA4:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidPaperSize, int32(c.PaperSize))
	}
	if c.FontSize < 0 || c.FontSize > 1<<15 {
		return fmt.Errorf("%w: %d", ErrInvalidFontSize, c.FontSize)
	}
	return nil
}
