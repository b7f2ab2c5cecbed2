//go:build windows && !amd64 && !arm64

package native

func checkByValue(uintptr) {
	panic("native: structs by value are not supported on this architecture")
}

func callRenderResult(uintptr, uintptr, uintptr) RenderResult { return RenderResult{} }

func callFreeResult(uintptr, RenderResult) {}

func callPdfResult(uintptr, uintptr, uintptr) PdfResult { return PdfResult{} }
