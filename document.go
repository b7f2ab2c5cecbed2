package mdacademic

import (
	"runtime"
	"sync/atomic"

	"github.com/alnah/go-mdacademic/internal/native"
)

// Document is a parsed document held by the engine. It can be rendered any
// number of times with different configurations and must be released with
// Close, or scoped with WithDocument.
//
// A Document is not safe for concurrent use.
type Document struct {
	handle atomic.Uintptr
	lib    *native.Library
}

// Parse parses text into a Document. Relative paths in the document are
// resolved at parse time against the ParseBasePath directory, if given.
func Parse(text string, opts ...ParseOption) (*Document, error) {
	lib, err := instance()
	if err != nil {
		return nil, err
	}
	return parseDocument(lib, text, opts...)
}

func parseDocument(lib *native.Library, text string, opts ...ParseOption) (*Document, error) {
	var pc parseConfig
	for _, opt := range opts {
		opt(&pc)
	}

	input, err := cString(text)
	if err != nil {
		return nil, err
	}

	var pins callPins
	defer pins.unpin()
	pins.bytes(input)

	var h native.Handle
	if pc.basePath != "" {
		req, err := toRenderRequest(RenderConfig{BasePath: pc.basePath})
		if err != nil {
			return nil, err
		}
		pins.render(req)
		h = lib.Calls.ParseWithConfig(input, req)
	} else {
		h = lib.Calls.Parse(input)
	}

	if h == 0 {
		return nil, &Error{Kind: KindParse, Msg: "failed to parse document"}
	}

	doc := &Document{lib: lib}
	doc.handle.Store(uintptr(h))
	runtime.SetFinalizer(doc, (*Document).finalize)
	return doc, nil
}

// Render renders the document to HTML. It fails with ErrDocumentFreed after
// Close.
func (d *Document) Render(cfg RenderConfig) (string, error) {
	h := d.handle.Load()
	if h == 0 {
		return "", ErrDocumentFreed
	}

	req, err := toRenderRequest(cfg)
	if err != nil {
		return "", err
	}

	var pins callPins
	defer pins.unpin()
	pins.render(req)
	res := d.lib.Calls.RenderHTML(native.Handle(h), req)
	runtime.KeepAlive(d)
	return unwrapRender(d.lib, res)
}

// Close releases the engine's document. Calling it again is a no-op.
func (d *Document) Close() error {
	h := d.handle.Swap(0)
	if h == 0 {
		return nil
	}
	runtime.SetFinalizer(d, nil)
	d.lib.Calls.FreeDocument(native.Handle(h))
	return nil
}

// Closed reports whether Close has run.
func (d *Document) Closed() bool {
	return d.handle.Load() == 0
}

func (d *Document) finalize() {
	if h := d.handle.Swap(0); h != 0 {
		logger().Debug("document released by finalizer")
		d.lib.Calls.FreeDocument(native.Handle(h))
	}
}

// WithDocument parses text, calls fn with the Document and releases it when
// fn returns, whatever the outcome.
func WithDocument(text string, fn func(*Document) error, opts ...ParseOption) error {
	doc, err := Parse(text, opts...)
	if err != nil {
		return err
	}
	defer doc.Close()
	return fn(doc)
}
