package mdacademic

import (
	"github.com/alnah/go-mdacademic/internal/native"
)

// Render converts Markdown to HTML in one call. Without options the output
// is an HTML fragment with KaTeX math.
func Render(text string, opts ...RenderOption) (string, error) {
	cfg := DefaultRenderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return ParseAndRender(text, cfg)
}

// ParseAndRender parses and renders text with cfg without keeping a Document.
func ParseAndRender(text string, cfg RenderConfig) (string, error) {
	lib, err := instance()
	if err != nil {
		return "", err
	}
	return parseAndRender(lib, text, cfg)
}

func parseAndRender(lib *native.Library, text string, cfg RenderConfig) (string, error) {
	req, err := toRenderRequest(cfg)
	if err != nil {
		return "", err
	}
	input, err := cString(text)
	if err != nil {
		return "", err
	}

	var pins callPins
	defer pins.unpin()
	pins.bytes(input)
	pins.render(req)
	res := lib.Calls.ParseAndRender(input, req)
	return unwrapRender(lib, res)
}
