//go:build windows

package native

import (
	"runtime"
	"unsafe"
)

// bindByValue installs a hand-written caller for fptr when its signature
// carries a result struct by value, and reports whether it did. It panics,
// like purego.RegisterFunc, when the architecture cannot pass that struct;
// bind recovers. Input and request pointers are pinned by the caller for the
// duration of the call.
func bindByValue(fptr any, addr uintptr) bool {
	switch fn := fptr.(type) {
	case *func(*byte, *RenderRequest) RenderResult:
		checkByValue(unsafe.Sizeof(RenderResult{}))
		*fn = func(input *byte, cfg *RenderRequest) RenderResult {
			res := callRenderResult(addr, uintptr(unsafe.Pointer(input)), uintptr(unsafe.Pointer(cfg)))
			runtime.KeepAlive(input)
			runtime.KeepAlive(cfg)
			return res
		}
	case *func(Handle, *RenderRequest) RenderResult:
		checkByValue(unsafe.Sizeof(RenderResult{}))
		*fn = func(doc Handle, cfg *RenderRequest) RenderResult {
			res := callRenderResult(addr, uintptr(doc), uintptr(unsafe.Pointer(cfg)))
			runtime.KeepAlive(cfg)
			return res
		}
	case *func(RenderResult):
		checkByValue(unsafe.Sizeof(RenderResult{}))
		*fn = func(r RenderResult) {
			callFreeResult(addr, r)
		}
	case *func(*byte, *PdfRequest) PdfResult:
		checkByValue(unsafe.Sizeof(PdfResult{}))
		*fn = func(input *byte, cfg *PdfRequest) PdfResult {
			res := callPdfResult(addr, uintptr(unsafe.Pointer(input)), uintptr(unsafe.Pointer(cfg)))
			runtime.KeepAlive(input)
			runtime.KeepAlive(cfg)
			return res
		}
	default:
		return false
	}
	return true
}
