package mdacademic

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdacademic/internal/native"
)

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("render twice with different configs", func(t *testing.T) {
		t.Parallel()
		f := newFakeEngine()
		doc, err := parseDocument(f.library(false), "# Title")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		defer doc.Close()

		fragment, err := doc.Render(DefaultRenderConfig())
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		full, err := doc.Render(RenderConfig{Standalone: true, MathBackend: MathMathML})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if strings.Contains(fragment, "<!DOCTYPE") {
			t.Error("fragment must not carry a DOCTYPE")
		}
		if !strings.Contains(full, "<!DOCTYPE") {
			t.Error("standalone output must carry a DOCTYPE")
		}
		if f.lastRender.MathBackend != 2 {
			t.Errorf("MathBackend = %d, want 2", f.lastRender.MathBackend)
		}
		assertReleased(t, f)
	})

	t.Run("base path selects parse_with_config", func(t *testing.T) {
		t.Parallel()
		f := newFakeEngine()
		doc, err := parseDocument(f.library(false), "text", ParseBasePath("/refs"))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		defer doc.Close()

		if f.lastRender == nil {
			t.Fatal("parse_with_config was not called")
		}
		if got := native.GoString(f.lastRender.BasePath); got != "/refs" {
			t.Errorf("BasePath = %q, want /refs", got)
		}
		if f.lastRender.MathBackend != 0 || f.lastRender.Standalone != 0 {
			t.Errorf("request = %+v, want {0, 0, path}", *f.lastRender)
		}
	})

	t.Run("nil handle", func(t *testing.T) {
		t.Parallel()
		f := newFakeEngine()
		doc, err := parseDocument(f.library(false), "<<invalid>>")
		if doc != nil {
			t.Error("expected no document")
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("error = %v, want ErrParse", err)
		}
		if len(f.docs) != 0 {
			t.Error("no handle may stay live")
		}
	})

	t.Run("embedded NUL", func(t *testing.T) {
		t.Parallel()
		f := newFakeEngine()
		if _, err := parseDocument(f.library(false), "a\x00b"); err == nil {
			t.Error("expected error")
		}
		if f.calls() != 0 {
			t.Error("no native call expected")
		}
	})
}

func TestDocument_Close(t *testing.T) {
	t.Parallel()

	f := newFakeEngine()
	doc, err := parseDocument(f.library(false), "body")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	h := native.Handle(doc.handle.Load())

	for i := 0; i < 3; i++ {
		if err := doc.Close(); err != nil {
			t.Fatalf("Close #%d: %v", i+1, err)
		}
	}
	if got := f.docFrees[h]; got != 1 {
		t.Errorf("free_document called %d times, want 1", got)
	}
	if !doc.Closed() {
		t.Error("Closed() = false after Close")
	}

	calls := f.calls()
	if _, err := doc.Render(DefaultRenderConfig()); !errors.Is(err, ErrDocumentFreed) {
		t.Errorf("error = %v, want ErrDocumentFreed", err)
	}
	if f.calls() != calls {
		t.Error("render after close must not reach the engine")
	}
}

func TestDocument_Finalize(t *testing.T) {
	t.Parallel()

	f := newFakeEngine()
	doc, err := parseDocument(f.library(false), "leaked")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	h := native.Handle(doc.handle.Load())

	doc.finalize()
	doc.finalize()
	if err := doc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := f.docFrees[h]; got != 1 {
		t.Errorf("free_document called %d times, want 1", got)
	}
}

func TestDocument_RenderErrorReleasesResult(t *testing.T) {
	t.Parallel()

	f := newFakeEngine()
	doc, err := parseDocument(f.library(false), "cite @missing")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer doc.Close()

	_, err = doc.Render(DefaultRenderConfig())
	if !errors.Is(err, ErrResolution) {
		t.Errorf("error = %v, want ErrResolution", err)
	}
	assertReleased(t, f)
}

func TestDocument_MatchesParseAndRender(t *testing.T) {
	t.Parallel()

	configs := []RenderConfig{
		DefaultRenderConfig(),
		{MathBackend: MathMathJax},
		{MathBackend: MathMathML, Standalone: true},
	}
	text := "# Intro\n\nEuler: $e^{i\\pi}+1=0$"

	for _, cfg := range configs {
		f := newFakeEngine()
		lib := f.library(false)

		direct, err := parseAndRender(lib, text, cfg)
		if err != nil {
			t.Fatalf("parseAndRender: %v", err)
		}

		doc, err := parseDocument(lib, text)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		viaDoc, err := doc.Render(cfg)
		_ = doc.Close()
		if err != nil {
			t.Fatalf("render: %v", err)
		}

		if direct != viaDoc {
			t.Errorf("cfg %+v: outputs differ\n direct: %q\n doc:    %q", cfg, direct, viaDoc)
		}
	}
}
