package mdacademic

import (
	"runtime"

	"github.com/alnah/go-mdacademic/internal/native"
)

// callPins holds the Go memory handed to one native call in place until
// unpin. Requests point at Go string buffers, so the request and every
// buffer it references are pinned, not only the top-level argument.
type callPins struct {
	p runtime.Pinner
}

func (c *callPins) bytes(ps ...*byte) {
	for _, b := range ps {
		if b != nil {
			c.p.Pin(b)
		}
	}
}

func (c *callPins) render(r *native.RenderRequest) {
	c.p.Pin(r)
	c.bytes(r.BasePath)
}

func (c *callPins) pdf(r *native.PdfRequest) {
	c.p.Pin(r)
	c.bytes(r.Title, r.BasePath)
}

func (c *callPins) unpin() {
	c.p.Unpin()
}

// toRenderRequest lays cfg out as the engine's MdAcademicConfig. The request
// references freshly allocated string buffers; pin it with callPins for the
// duration of the native call.
func toRenderRequest(cfg RenderConfig) (*native.RenderRequest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	basePath, err := optionalCString(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	return &native.RenderRequest{
		MathBackend: int32(cfg.MathBackend),
		Standalone:  cBool(cfg.Standalone),
		BasePath:    basePath,
	}, nil
}

// toPdfRequest lays cfg out as the engine's MdAcademicPdfConfig.
func toPdfRequest(cfg PdfConfig) (*native.PdfRequest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	title, err := optionalCString(cfg.Title)
	if err != nil {
		return nil, err
	}
	basePath, err := optionalCString(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	fontSize := cfg.FontSize
	if fontSize == 0 {
		fontSize = DefaultFontSize
	}

	return &native.PdfRequest{
		PaperSize:   int32(cfg.PaperSize),
		FontSize:    int32(fontSize),
		TitlePage:   cBool(cfg.TitlePage),
		PageNumbers: cBool(cfg.PageNumbers),
		Title:       title,
		BasePath:    basePath,
	}, nil
}

// optionalCString maps an unset string to a nil pointer. The engine treats
// nil and "" differently, so "" is never sent for an absent value.
func optionalCString(s string) (*byte, error) {
	if s == "" {
		return nil, nil
	}
	return cString(s)
}

// cString converts a required string argument.
func cString(s string) (*byte, error) {
	p, err := native.CString(s)
	if err != nil {
		return nil, remapError(err)
	}
	return p, nil
}

func cBool(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
