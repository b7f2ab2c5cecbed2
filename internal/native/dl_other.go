//go:build !(darwin || linux || windows)

package native

import (
	"fmt"
	"runtime"
)

func openLibrary(string) (uintptr, error) {
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}

func lookupSymbol(uintptr, string) (uintptr, error) {
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}

func closeLibrary(uintptr) error {
	return nil
}

func registerFunc(any, uintptr) {
	panic("native: no dynamic loader on " + runtime.GOOS)
}
