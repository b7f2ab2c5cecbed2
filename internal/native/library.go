package native

import (
	"fmt"
	"log/slog"
)

// Library is an opened engine library and its bound entry points.
// It is never closed: the process owns it until exit.
type Library struct {
	Path   string
	HasPDF bool
	Calls  Calls

	handle uintptr
}

// New wraps an already bound call table. HasPDF is derived from the PDF
// entries of calls. Open is the production constructor; New serves embedders
// and tests that provide their own table.
func New(path string, calls Calls) *Library {
	return &Library{Path: path, Calls: calls, HasPDF: calls.hasPDF()}
}

// Open loads the shared library at path and binds its entry points.
// A missing required symbol fails the load; missing PDF symbols only clear
// HasPDF.
func Open(path string, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}

	handle, err := openLibrary(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	lib := &Library{Path: path, handle: handle}
	lookup := func(name string) (uintptr, error) {
		return lookupSymbol(handle, name)
	}

	hasPDF, err := bind(&lib.Calls, lookup, registerFunc, logger)
	if err != nil {
		_ = closeLibrary(handle)
		return nil, &LoadError{Path: path, Err: err}
	}
	lib.HasPDF = hasPDF

	logger.Debug("native library loaded",
		slog.String("path", path),
		slog.Bool("pdf", hasPDF))
	return lib, nil
}

// Version returns the engine version string. The engine owns it statically,
// so it is copied and never freed.
func (l *Library) Version() string {
	return GoString(l.Calls.Version())
}

// bind resolves every symbol before registering it, so a missing symbol is an
// error rather than a panic inside purego. register may still panic on a
// signature the platform cannot call (struct returns on some GOARCH); that is
// recovered and treated like a missing symbol.
func bind(c *Calls, lookup func(string) (uintptr, error), register func(any, uintptr), logger *slog.Logger) (bool, error) {
	for _, s := range c.required() {
		addr, err := lookup(s.name)
		if err != nil || addr == 0 {
			return false, fmt.Errorf("%w: %s", ErrMissingSymbol, s.name)
		}
		if err := safeRegister(register, s, addr); err != nil {
			return false, err
		}
	}

	optional := c.optional()
	addrs := make([]uintptr, len(optional))
	for i, s := range optional {
		addr, err := lookup(s.name)
		if err != nil || addr == 0 {
			logger.Debug("PDF support disabled", slog.String("missing", s.name))
			return false, nil
		}
		addrs[i] = addr
	}
	for i, s := range optional {
		if err := safeRegister(register, s, addrs[i]); err != nil {
			logger.Debug("PDF support disabled", slog.String("error", err.Error()))
			c.RenderPDF, c.RenderPDFToFile, c.FreePDFData = nil, nil, nil
			return false, nil
		}
	}
	return c.hasPDF(), nil
}

func safeRegister(register func(any, uintptr), s symbol, addr uintptr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("binding %s: %v", s.name, r)
		}
	}()
	register(s.fn, addr)
	return nil
}
