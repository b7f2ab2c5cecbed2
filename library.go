package mdacademic

import (
	"log/slog"
	"sync"

	"github.com/alnah/go-mdacademic/internal/native"
)

// libraryLoader is the process-wide, load-once holder of the native library.
// The first caller locates, opens and binds under mu; later callers get the
// same result, including a cached failure. The library is never unloaded.
type libraryLoader struct {
	mu   sync.Mutex
	done bool
	lib  *native.Library
	err  error
	open func() (*native.Library, error)
}

func (l *libraryLoader) get() (*native.Library, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.done {
		l.lib, l.err = l.open()
		l.done = true
	}
	return l.lib, l.err
}

// process is the single library instance of this process.
var process = &libraryLoader{open: openNativeLibrary}

func instance() (*native.Library, error) {
	return process.get()
}

func openNativeLibrary() (*native.Library, error) {
	path, err := native.Locate()
	if err != nil {
		return nil, remapError(err)
	}

	lib, err := native.Open(path, logger())
	if err != nil {
		return nil, remapError(err)
	}
	return lib, nil
}

func logger() *slog.Logger {
	return slog.Default().With(slog.String("component", "mdacademic"))
}

// LibraryInfo describes the loaded engine.
type LibraryInfo struct {
	Path    string // path handed to the dynamic loader
	Version string
	PDF     bool // built with the "pdf" feature
}

// Info loads the engine if needed and describes it.
func Info() (LibraryInfo, error) {
	lib, err := instance()
	if err != nil {
		return LibraryInfo{}, err
	}
	return LibraryInfo{Path: lib.Path, Version: lib.Version(), PDF: lib.HasPDF}, nil
}

// LibraryVersion returns the engine's version string, e.g. "0.1.0".
func LibraryVersion() (string, error) {
	lib, err := instance()
	if err != nil {
		return "", err
	}
	return lib.Version(), nil
}

// HasPDFSupport reports whether the engine was built with PDF output.
func HasPDFSupport() (bool, error) {
	lib, err := instance()
	if err != nil {
		return false, err
	}
	return lib.HasPDF, nil
}
