// Package nativetest compiles a small C stand-in for the engine, so tests can
// bind real symbols through the platform calling convention instead of a Go
// fake. The stand-in exports the engine's full ABI, PDF entries included.
package nativetest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

//go:embed engine.c
var engineSource []byte

// ErrNoCompiler reports that no C compiler was found.
var ErrNoCompiler = errors.New("no C compiler found (set CC)")

// Counter symbols exported by the stand-in next to the engine ABI.
const (
	SymFreedFields    = "standin_freed_fields"
	SymFreedDocuments = "standin_freed_documents"
)

// Version is what the stand-in's mdacademic_version returns.
const Version = "0.1.0-standin"

// Build compiles the stand-in into dir and returns the library path.
func Build(dir string) (string, error) {
	cc := compiler()
	if cc == "" {
		return "", ErrNoCompiler
	}

	src := filepath.Join(dir, "engine.c")
	if err := os.WriteFile(src, engineSource, 0o600); err != nil {
		return "", err
	}

	lib, flags := output(dir)
	args := append(flags, "-O1", "-o", lib, src)
	out, err := exec.Command(cc, args...).CombinedOutput() // #nosec G204 -- compiler from PATH or CC
	if err != nil {
		return "", fmt.Errorf("compiling stand-in engine with %s: %w\n%s", cc, err, out)
	}
	return lib, nil
}

func output(dir string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(dir, "libmarkdown_academic.dylib"), []string{"-dynamiclib"}
	case "windows":
		return filepath.Join(dir, "markdown_academic.dll"), []string{"-shared"}
	default:
		return filepath.Join(dir, "libmarkdown_academic.so"), []string{"-shared", "-fPIC"}
	}
}

func compiler() string {
	candidates := []string{"cc", "gcc", "clang"}
	if cc := os.Getenv("CC"); cc != "" {
		candidates = append([]string{cc}, candidates...)
	}
	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p
		}
	}
	return ""
}
