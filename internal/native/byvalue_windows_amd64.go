package native

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// On Windows x64 a struct wider than 8 bytes is returned through a hidden
// pointer passed as the first argument, and passed as an argument by
// reference to a caller-owned copy. Every size works that way.

func checkByValue(uintptr) {}

func callRenderResult(fn, a1, a2 uintptr) RenderResult {
	var res RenderResult
	purego.SyscallN(fn, uintptr(unsafe.Pointer(&res)), a1, a2)
	return res
}

func callFreeResult(fn uintptr, r RenderResult) {
	purego.SyscallN(fn, uintptr(unsafe.Pointer(&r)))
}

func callPdfResult(fn, a1, a2 uintptr) PdfResult {
	var res PdfResult
	purego.SyscallN(fn, uintptr(unsafe.Pointer(&res)), a1, a2)
	return res
}
