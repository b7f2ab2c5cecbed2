package native

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alnah/go-mdacademic/internal/fileutil"
)

// EnvLibraryPath overrides the library search when it names an existing file.
const EnvLibraryPath = "MARKDOWN_ACADEMIC_LIB"

// Locator resolves the path of the shared library. Its fields are the
// process facts it depends on; DefaultLocator wires the real ones.
type Locator struct {
	GOOS       string
	Getenv     func(string) string
	Executable func() (string, error)
	Getwd      func() (string, error)
	Exists     func(string) bool
}

// DefaultLocator returns a Locator bound to the running process.
func DefaultLocator() *Locator {
	return &Locator{
		GOOS:       runtime.GOOS,
		Getenv:     os.Getenv,
		Executable: os.Executable,
		Getwd:      os.Getwd,
		Exists:     fileutil.FileExists,
	}
}

// LibraryName returns the platform file name of the engine library.
func LibraryName(goos string) (string, error) {
	switch goos {
	case "linux":
		return "libmarkdown_academic.so", nil
	case "darwin":
		return "libmarkdown_academic.dylib", nil
	case "windows":
		return "markdown_academic.dll", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Locate returns the library path using the default locator.
func Locate() (string, error) {
	return DefaultLocator().Locate()
}

// Locate searches, first match wins:
//  1. $MARKDOWN_ACADEMIC_LIB, if the file exists
//  2. the executable's directory, then ../lib next to it
//  3. rust/target/release then rust/target/debug, from the working
//     directory and from the executable's directory
//  4. the bare file name, left to the system loader
//
// Only an unknown operating system is an error; a library that cannot be
// found surfaces later when the loader opens the bare name.
func (l *Locator) Locate() (string, error) {
	if p := l.Getenv(EnvLibraryPath); p != "" && l.Exists(p) {
		return p, nil
	}

	name, err := LibraryName(l.GOOS)
	if err != nil {
		return "", err
	}

	for _, p := range l.candidates(name) {
		if l.Exists(p) {
			if abs, err := filepath.Abs(p); err == nil {
				return abs, nil
			}
			return p, nil
		}
	}
	return name, nil
}

// Candidates lists the file system paths Locate checks, in order, excluding
// the environment override and the bare-name fallback.
func (l *Locator) Candidates() ([]string, error) {
	name, err := LibraryName(l.GOOS)
	if err != nil {
		return nil, err
	}
	return l.candidates(name), nil
}

func (l *Locator) candidates(name string) []string {
	var exeDir string
	if l.Executable != nil {
		if exe, err := l.Executable(); err == nil {
			exeDir = filepath.Dir(exe)
		}
	}

	var paths []string
	if exeDir != "" {
		paths = append(paths,
			filepath.Join(exeDir, name),
			filepath.Join(exeDir, "..", "lib", name),
		)
	}

	var roots []string
	if l.Getwd != nil {
		if wd, err := l.Getwd(); err == nil {
			roots = append(roots, wd)
		}
	}
	if exeDir != "" {
		roots = append(roots, exeDir)
	}
	for _, variant := range []string{"release", "debug"} {
		for _, root := range roots {
			paths = append(paths, filepath.Join(root, "rust", "target", variant, name))
		}
	}
	return paths
}
