//go:build windows

package native

import (
	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

func openLibrary(path string) (uintptr, error) {
	h, err := windows.LoadLibrary(path)
	return uintptr(h), err
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func closeLibrary(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}

// registerFunc binds the entry points that pass or return structs by value
// by hand; purego.RegisterFunc rejects struct signatures on Windows.
func registerFunc(fptr any, addr uintptr) {
	if bindByValue(fptr, addr) {
		return
	}
	purego.RegisterFunc(fptr, addr)
}
