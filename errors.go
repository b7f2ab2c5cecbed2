package mdacademic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdacademic/internal/native"
)

// Sentinel errors for errors.Is. Every *Error matches ErrMarkdownAcademic and
// the sentinel of its Kind.
var (
	ErrMarkdownAcademic    = errors.New("markdown-academic error")
	ErrParse               = errors.New("parse error")
	ErrRender              = errors.New("render error")
	ErrResolution          = errors.New("resolution error")
	ErrPDF                 = errors.New("PDF error")
	ErrLibraryLoad         = errors.New("library load error")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// Misuse and feature errors.
var (
	ErrDocumentFreed  = &Error{Kind: KindGeneric, Msg: "document has been freed"}
	ErrPDFUnavailable = &Error{Kind: KindGeneric, Msg: "PDF support not available"}
)

// Configuration validation errors.
var (
	ErrInvalidMathBackend = errors.New("invalid math backend")
	ErrInvalidPaperSize   = errors.New("invalid paper size")
	ErrInvalidFontSize    = errors.New("invalid font size")
)

// Kind classifies an Error.
type Kind int

const (
	KindGeneric Kind = iota
	KindParse
	KindRender
	KindResolution
	KindPDF
	KindLibraryLoad
	KindUnsupportedPlatform
)

func (k Kind) String() string {
	return k.sentinel().Error()
}

func (k Kind) sentinel() error {
	switch k {
	case KindParse:
		return ErrParse
	case KindRender:
		return ErrRender
	case KindResolution:
		return ErrResolution
	case KindPDF:
		return ErrPDF
	case KindLibraryLoad:
		return ErrLibraryLoad
	case KindUnsupportedPlatform:
		return ErrUnsupportedPlatform
	default:
		return ErrMarkdownAcademic
	}
}

// Error is a failure reported by the engine or by the binding around it.
type Error struct {
	Kind Kind
	Msg  string // engine message, verbatim
	Path string // library path, for load failures
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return e.Kind.String() + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMarkdownAcademic or the sentinel of e.Kind.
func (e *Error) Is(target error) bool {
	return target == ErrMarkdownAcademic || target == e.Kind.sentinel()
}

// Markers the engine prefixes to its error messages.
var kindMarkers = []struct {
	marker string
	kind   Kind
}{
	{"Parse error", KindParse},
	{"Render error", KindRender},
	{"Resolution error", KindResolution},
}

// classify maps an engine message to a Kind by its marker. Unknown messages
// are KindGeneric.
func classify(msg string) Kind {
	for _, m := range kindMarkers {
		if strings.Contains(msg, m.marker) {
			return m.kind
		}
	}
	return KindGeneric
}

// remapError converts native package errors to public *Error values.
func remapError(err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	var loadErr *native.LoadError
	switch {
	case errors.Is(err, native.ErrUnsupportedPlatform):
		out := &Error{Kind: KindUnsupportedPlatform, Err: err}
		if errors.As(err, &loadErr) {
			out.Path = loadErr.Path
		}
		return out
	case errors.As(err, &loadErr):
		return &Error{Kind: KindLibraryLoad, Msg: loadErr.Error(), Path: loadErr.Path, Err: err}
	case errors.Is(err, native.ErrEmbeddedNUL):
		return &Error{Kind: KindGeneric, Msg: fmt.Sprintf("invalid input: %v", err), Err: err}
	default:
		return &Error{Kind: KindGeneric, Err: err}
	}
}
