package native

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// On Windows arm64 a 16-byte struct travels in a register pair (x0/x1) both
// as a result and as an argument. Wider results need x8, which SyscallN
// cannot set, so the PDF buffer entry point cannot be bound there.

func checkByValue(size uintptr) {
	if size > 16 {
		panic("native: struct results wider than 16 bytes are not supported on windows/arm64")
	}
}

func callRenderResult(fn, a1, a2 uintptr) RenderResult {
	r1, r2, _ := purego.SyscallN(fn, a1, a2)
	pair := [2]uintptr{r1, r2}
	return *(*RenderResult)(unsafe.Pointer(&pair))
}

func callFreeResult(fn uintptr, r RenderResult) {
	purego.SyscallN(fn, uintptr(unsafe.Pointer(r.Data)), uintptr(unsafe.Pointer(r.Error)))
}

func callPdfResult(uintptr, uintptr, uintptr) PdfResult {
	return PdfResult{}
}
