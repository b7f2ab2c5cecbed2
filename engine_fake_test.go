package mdacademic

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alnah/go-mdacademic/internal/native"
)

// fakeEngine is an in-process stand-in for the native library. It hands out
// Go-allocated NUL-terminated buffers and tracks every one of them so tests
// can assert that each allocation is released exactly once.
type fakeEngine struct {
	mu sync.Mutex

	live       map[*byte]bool
	doubleFree int
	docs       map[native.Handle]string
	docFrees   map[native.Handle]int
	nextHandle native.Handle

	lastRender *native.RenderRequest
	lastPdf    *native.PdfRequest
	nativeCall int

	noData     bool // ParseAndRender returns an empty result
	freePanics bool // FreeResult panics after releasing
	writeFails bool // RenderPDFToFile returns a non-zero status
	emptyPDF   bool // RenderPDF returns an empty buffer without an error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		live:     map[*byte]bool{},
		docs:     map[native.Handle]string{},
		docFrees: map[native.Handle]int{},
	}
}

// library builds a Library around the fake. withPDF controls whether the
// optional entry points are present.
func (f *fakeEngine) library(withPDF bool) *native.Library {
	calls := native.Calls{
		ParseAndRender:  f.parseAndRender,
		Parse:           f.parse,
		ParseWithConfig: f.parseWithConfig,
		RenderHTML:      f.renderHTML,
		FreeString:      f.free,
		FreeDocument:    f.freeDocument,
		FreeResult:      f.freeResult,
		Version:         func() *byte { return staticVersion },
	}
	if withPDF {
		calls.RenderPDF = f.renderPDF
		calls.RenderPDFToFile = f.renderPDFToFile
		calls.FreePDFData = func(p *byte, _ uintptr) { f.free(p) }
	}
	return native.New("/fake/libmarkdown_academic.so", calls)
}

var staticVersion, _ = native.CString("0.1.0")

func (f *fakeEngine) alloc(s string) *byte {
	buf := append([]byte(s), 0)
	p := &buf[0]
	f.mu.Lock()
	f.live[p] = true
	f.mu.Unlock()
	return p
}

func (f *fakeEngine) free(p *byte) {
	if p == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.live[p] {
		f.doubleFree++
		return
	}
	delete(f.live, p)
}

func (f *fakeEngine) outstanding() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

func (f *fakeEngine) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nativeCall
}

func (f *fakeEngine) count() {
	f.mu.Lock()
	f.nativeCall++
	f.mu.Unlock()
}

// render mimics the engine output: a paragraph per input, a full document
// when standalone, and an error for unclosed display math.
func (f *fakeEngine) render(text string, req *native.RenderRequest) native.RenderResult {
	if strings.Contains(text, "$$") && strings.Count(text, "$$")%2 == 1 {
		return native.RenderResult{Error: f.alloc("Parse error: unclosed display math at line 1")}
	}
	if strings.Contains(text, "@missing") {
		return native.RenderResult{Error: f.alloc("Resolution error: unknown citation key 'missing'")}
	}
	if f.noData {
		return native.RenderResult{}
	}

	body := fmt.Sprintf("<p data-math=\"%d\">%s</p>", req.MathBackend, text)
	if req.Standalone == 1 {
		body = "<!DOCTYPE html>\n<html><head><title>doc</title></head><body>" + body + "</body></html>"
	}
	return native.RenderResult{Data: f.alloc(body)}
}

func (f *fakeEngine) parseAndRender(input *byte, req *native.RenderRequest) native.RenderResult {
	f.count()
	f.lastRender = copyRenderRequest(req)
	return f.render(native.GoString(input), req)
}

func (f *fakeEngine) parse(input *byte) native.Handle {
	f.count()
	text := native.GoString(input)
	if strings.Contains(text, "\x01") || text == "<<invalid>>" {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextHandle++
	f.docs[f.nextHandle] = text
	return f.nextHandle
}

func (f *fakeEngine) parseWithConfig(input *byte, req *native.RenderRequest) native.Handle {
	f.lastRender = copyRenderRequest(req)
	return f.parse(input)
}

func (f *fakeEngine) renderHTML(doc native.Handle, req *native.RenderRequest) native.RenderResult {
	f.count()
	f.mu.Lock()
	text, ok := f.docs[doc]
	f.mu.Unlock()
	if !ok {
		return native.RenderResult{Error: f.alloc("Render error: invalid document handle")}
	}
	f.lastRender = copyRenderRequest(req)
	return f.render(text, req)
}

func (f *fakeEngine) freeDocument(doc native.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docFrees[doc]++
	delete(f.docs, doc)
}

func (f *fakeEngine) freeResult(res native.RenderResult) {
	f.free(res.Data)
	f.free(res.Error)
	if f.freePanics {
		panic("free_result: corrupted heap")
	}
}

func (f *fakeEngine) renderPDF(input *byte, req *native.PdfRequest) native.PdfResult {
	f.count()
	f.lastPdf = copyPdfRequest(req)
	text := native.GoString(input)
	if strings.Contains(text, "\\fail") {
		return native.PdfResult{Error: f.alloc("Typst compilation failed: unknown command")}
	}
	if f.emptyPDF {
		return native.PdfResult{}
	}
	data := "%PDF-1.7\n" + text
	return native.PdfResult{Data: f.alloc(data), Len: uintptr(len(data))}
}

func (f *fakeEngine) renderPDFToFile(input *byte, req *native.PdfRequest, path *byte) int32 {
	f.count()
	f.lastPdf = copyPdfRequest(req)
	if f.writeFails {
		return 1
	}
	data := "%PDF-1.7\n" + native.GoString(input)
	if err := os.WriteFile(native.GoString(path), []byte(data), 0o644); err != nil {
		return 1
	}
	return 0
}

func copyRenderRequest(req *native.RenderRequest) *native.RenderRequest {
	if req == nil {
		return nil
	}
	c := *req
	return &c
}

func copyPdfRequest(req *native.PdfRequest) *native.PdfRequest {
	if req == nil {
		return nil
	}
	c := *req
	return &c
}
