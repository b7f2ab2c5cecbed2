package native

import (
	"errors"
	"fmt"
)

// Sentinel errors for the native boundary.
var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrMissingSymbol       = errors.New("required symbol not found")
	ErrEmbeddedNUL         = errors.New("string contains NUL byte")
)

// LoadError reports a failure to open or bind the shared library.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load markdown-academic library from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
