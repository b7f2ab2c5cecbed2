package main

import (
	"context"

	"github.com/alnah/go-mdacademic"
	"github.com/alnah/go-mdacademic/internal/chrome"
)

// Engine is the slice of the mdacademic API the CLI drives.
type Engine interface {
	Info() (mdacademic.LibraryInfo, error)
	Render(text string, cfg mdacademic.RenderConfig) (string, error)
	RenderPDF(text string, cfg mdacademic.PdfConfig) ([]byte, error)
	RenderPDFToFile(text, outputPath string, cfg mdacademic.PdfConfig) error
}

// Printer turns standalone HTML into PDF.
type Printer interface {
	PrintHTML(ctx context.Context, content string, opts chrome.Options) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ Engine  = nativeEngine{}
	_ Printer = (*chrome.Renderer)(nil)
)

// nativeEngine calls the process-wide engine library.
type nativeEngine struct{}

func (nativeEngine) Info() (mdacademic.LibraryInfo, error) {
	return mdacademic.Info()
}

func (nativeEngine) Render(text string, cfg mdacademic.RenderConfig) (string, error) {
	return mdacademic.ParseAndRender(text, cfg)
}

func (nativeEngine) RenderPDF(text string, cfg mdacademic.PdfConfig) ([]byte, error) {
	return mdacademic.RenderPDF(text, cfg)
}

func (nativeEngine) RenderPDFToFile(text, outputPath string, cfg mdacademic.PdfConfig) error {
	return mdacademic.RenderPDFToFile(text, outputPath, cfg)
}
