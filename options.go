package mdacademic

// RenderOption adjusts the RenderConfig used by Render.
type RenderOption func(*RenderConfig)

// WithMathBackend selects the math backend.
func WithMathBackend(b MathBackend) RenderOption {
	return func(c *RenderConfig) {
		c.MathBackend = b
	}
}

// WithStandalone toggles full HTML document output.
func WithStandalone(standalone bool) RenderOption {
	return func(c *RenderConfig) {
		c.Standalone = standalone
	}
}

// WithBasePath sets the directory relative paths are resolved against.
func WithBasePath(dir string) RenderOption {
	return func(c *RenderConfig) {
		c.BasePath = dir
	}
}

// ParseOption adjusts how Parse builds a Document.
type ParseOption func(*parseConfig)

type parseConfig struct {
	basePath string
}

// ParseBasePath resolves the document's relative paths (bibliography files)
// against dir at parse time.
func ParseBasePath(dir string) ParseOption {
	return func(c *parseConfig) {
		c.basePath = dir
	}
}
