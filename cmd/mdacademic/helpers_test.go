package main

// Notes:
// - Test doubles shared across the CLI tests: a scripted Engine, a Printer
//   that records calls, and an Environment writing to buffers.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-mdacademic"
	"github.com/alnah/go-mdacademic/internal/chrome"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// fakeEngine renders "<p>" + text + "</p>" and produces "%PDF-" documents.
// Markdown containing "BROKEN" fails with a parse error.
type fakeEngine struct {
	info    mdacademic.LibraryInfo
	infoErr error

	mu        sync.Mutex
	renders   []mdacademic.RenderConfig
	pdfs      []mdacademic.PdfConfig
	fileCalls []string
}

func newFakeEngine(pdf bool) *fakeEngine {
	return &fakeEngine{info: mdacademic.LibraryInfo{Path: "/lib/libmarkdown_academic.so", Version: "0.1.0", PDF: pdf}}
}

func (e *fakeEngine) Info() (mdacademic.LibraryInfo, error) {
	return e.info, e.infoErr
}

func (e *fakeEngine) Render(text string, cfg mdacademic.RenderConfig) (string, error) {
	e.mu.Lock()
	e.renders = append(e.renders, cfg)
	e.mu.Unlock()

	if strings.Contains(text, "BROKEN") {
		return "", &mdacademic.Error{Kind: mdacademic.KindParse, Msg: "unclosed math"}
	}
	body := "<p>" + strings.TrimSpace(text) + "</p>"
	if cfg.Standalone {
		return "<!DOCTYPE html><html><head><title>t</title></head><body>" + body + "</body></html>", nil
	}
	return body, nil
}

func (e *fakeEngine) RenderPDF(text string, cfg mdacademic.PdfConfig) ([]byte, error) {
	e.mu.Lock()
	e.pdfs = append(e.pdfs, cfg)
	e.mu.Unlock()

	if strings.Contains(text, "BROKEN") {
		return nil, &mdacademic.Error{Kind: mdacademic.KindPDF, Msg: "layout failed"}
	}
	return []byte("%PDF-1.7 " + cfg.Title), nil
}

func (e *fakeEngine) RenderPDFToFile(text, outputPath string, cfg mdacademic.PdfConfig) error {
	data, err := e.RenderPDF(text, cfg)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.fileCalls = append(e.fileCalls, outputPath)
	e.mu.Unlock()
	return os.WriteFile(outputPath, data, 0o644)
}

func (e *fakeEngine) lastPDF(t *testing.T) mdacademic.PdfConfig {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pdfs) == 0 {
		t.Fatal("no RenderPDF call recorded")
	}
	return e.pdfs[len(e.pdfs)-1]
}

// fakePrinter records the HTML it is asked to print.
type fakePrinter struct {
	mu      sync.Mutex
	html    []string
	opts    []chrome.Options
	err     error
	closed  int
	timeout time.Duration
}

func (p *fakePrinter) PrintHTML(ctx context.Context, content string, opts chrome.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.html = append(p.html, content)
	p.opts = append(p.opts, opts)
	return []byte("%PDF-chrome"), nil
}

func (p *fakePrinter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

// printerFactory hands out fakePrinters and remembers them.
type printerFactory struct {
	mu       sync.Mutex
	printers []*fakePrinter
	err      error
}

func (f *printerFactory) New(timeout time.Duration) Printer {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &fakePrinter{err: f.err, timeout: timeout}
	f.printers = append(f.printers, p)
	return p
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	vars     map[string]string
	engine   *fakeEngine
	printers *printerFactory
}

func newTestEnv(engine *fakeEngine) *testEnv {
	te := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		vars:     map[string]string{},
		engine:   engine,
		printers: &printerFactory{},
	}
	var mu sync.Mutex
	te.Environment = &Environment{
		Now:    time.Now,
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string {
			mu.Lock()
			defer mu.Unlock()
			return te.vars[k]
		},
		Setenv: func(k, v string) error {
			mu.Lock()
			defer mu.Unlock()
			te.vars[k] = v
			return nil
		},
		Engine:     engine,
		NewPrinter: te.printers.New,
		Logger:     newLogger(te.stderr, false),
	}
	return te
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

var errBoom = errors.New("boom")
