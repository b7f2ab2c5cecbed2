package mdacademic

import (
	"log/slog"

	"github.com/alnah/go-mdacademic/internal/native"
)

// unwrapRender turns an engine result into HTML or a classified error. The
// result is freed exactly once on every path, panics included; the data is
// copied before the free.
func unwrapRender(lib *native.Library, res native.RenderResult) (string, error) {
	defer freeRenderResult(lib, res)

	if res.Error != nil {
		msg := native.GoString(res.Error)
		return "", &Error{Kind: classify(msg), Msg: msg}
	}
	if res.Data == nil {
		return "", &Error{Kind: KindGeneric, Msg: "no data returned"}
	}
	return native.GoString(res.Data), nil
}

// unwrapPdf is unwrapRender for PDF buffers. Every engine message is a PDF
// error; an empty buffer without a message is one too.
func unwrapPdf(lib *native.Library, res native.PdfResult) ([]byte, error) {
	defer freePdfResult(lib, res)

	if res.Error != nil {
		return nil, &Error{Kind: KindPDF, Msg: native.GoString(res.Error)}
	}
	if res.Data == nil || res.Len == 0 {
		return nil, &Error{Kind: KindPDF, Msg: "no data returned"}
	}
	return native.GoBytes(res.Data, res.Len), nil
}

func freeRenderResult(lib *native.Library, res native.RenderResult) {
	defer recoverCleanup(native.SymFreeResult)
	lib.Calls.FreeResult(res)
}

func freePdfResult(lib *native.Library, res native.PdfResult) {
	if res.Error != nil {
		freeString(lib, res.Error)
	}
	if res.Data != nil && res.Len > 0 {
		freePdfData(lib, res.Data, res.Len)
	}
}

func freeString(lib *native.Library, s *byte) {
	defer recoverCleanup(native.SymFreeString)
	lib.Calls.FreeString(s)
}

func freePdfData(lib *native.Library, data *byte, n uintptr) {
	defer recoverCleanup(native.SymFreePDFData)
	lib.Calls.FreePDFData(data, n)
}

// recoverCleanup keeps a failing free from replacing the error or value being
// returned. It must be deferred directly.
func recoverCleanup(call string) {
	if r := recover(); r != nil {
		logger().Warn("native cleanup failed",
			slog.String("call", call),
			slog.Any("panic", r))
	}
}
