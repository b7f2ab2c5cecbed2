package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-mdacademic/internal/chrome"
	"github.com/alnah/go-mdacademic/internal/fileutil"
	"github.com/alnah/go-mdacademic/internal/pipeline"
)

// Compile-time interface checks.
var (
	_ Converter = (*htmlConverter)(nil)
	_ Converter = (*nativePDFConverter)(nil)
	_ Converter = (*chromePDFConverter)(nil)
	_ io.Closer = (*chromePDFConverter)(nil)
)

// htmlConverter renders Markdown to HTML.
type htmlConverter struct {
	engine Engine
	params htmlParams
	stdout io.Writer
}

func (c *htmlConverter) Convert(_ context.Context, f FileToConvert) error {
	text, err := readMarkdown(f.InputPath)
	if err != nil {
		return err
	}

	out, err := renderHTML(c.engine, text, f.InputPath, c.params)
	if err != nil {
		return err
	}

	if f.OutputPath == stdoutPath {
		_, err := io.WriteString(c.stdout, out)
		return err
	}
	return writeOutput(f.OutputPath, []byte(out))
}

// nativePDFConverter lays out PDFs inside the engine.
type nativePDFConverter struct {
	engine Engine
	params pdfParams
}

func (c *nativePDFConverter) Convert(_ context.Context, f FileToConvert) error {
	text, err := readMarkdown(f.InputPath)
	if err != nil {
		return err
	}

	cfg := c.params.pdf
	cfg.Title = documentTitle(cfg.Title, text, f.InputPath)
	cfg.BasePath = basePathFor(cfg.BasePath, f.InputPath)

	if c.params.direct {
		if err := fileutil.EnsureParentDir(f.OutputPath); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return c.engine.RenderPDFToFile(text, f.OutputPath, cfg)
	}

	data, err := c.engine.RenderPDF(text, cfg)
	if err != nil {
		return err
	}
	return writeOutput(f.OutputPath, data)
}

// chromePDFConverter renders standalone HTML and prints it with a browser.
// Each converter owns its printer; the pool closes it.
type chromePDFConverter struct {
	engine  Engine
	printer Printer
	params  pdfParams
}

func (c *chromePDFConverter) Convert(ctx context.Context, f FileToConvert) error {
	text, err := readMarkdown(f.InputPath)
	if err != nil {
		return err
	}

	out, err := renderHTML(c.engine, text, f.InputPath, c.params.html)
	if err != nil {
		return err
	}

	// The page is loaded from a temp file, so local assets need absolute URLs.
	out, err = pipeline.RewriteRelativePaths(out, basePathFor(c.params.html.render.BasePath, f.InputPath))
	if err != nil {
		return err
	}

	if c.params.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.params.timeout)
		defer cancel()
	}

	data, err := c.printer.PrintHTML(ctx, out, chrome.Options{
		Paper:       c.params.paper,
		PageNumbers: c.params.pdf.PageNumbers,
	})
	if err != nil {
		return err
	}
	return writeOutput(f.OutputPath, data)
}

func (c *chromePDFConverter) Close() error {
	return c.printer.Close()
}

// renderHTML runs the engine, then highlighting and CSS injection.
func renderHTML(engine Engine, text, inputPath string, p htmlParams) (string, error) {
	cfg := p.render
	cfg.BasePath = basePathFor(cfg.BasePath, inputPath)

	out, err := engine.Render(text, cfg)
	if err != nil {
		return "", err
	}

	if p.highlighter != nil {
		if out, err = p.highlighter.Highlight(out); err != nil {
			return "", err
		}
	}
	if cfg.Standalone && p.css != "" {
		out = pipeline.InjectCSS(out, p.css)
	}
	return out, nil
}

func readMarkdown(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	return string(data), nil
}

func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteOutput(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
