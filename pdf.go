package mdacademic

import (
	"fmt"

	"github.com/alnah/go-mdacademic/internal/native"
)

// RenderPDF renders text to a PDF document held in memory.
// It fails with ErrPDFUnavailable when the engine lacks the "pdf" feature.
func RenderPDF(text string, cfg PdfConfig) ([]byte, error) {
	lib, err := instance()
	if err != nil {
		return nil, err
	}
	return renderPDF(lib, text, cfg)
}

// RenderPDFToFile renders text and lets the engine write the PDF to
// outputPath.
func RenderPDFToFile(text, outputPath string, cfg PdfConfig) error {
	lib, err := instance()
	if err != nil {
		return err
	}
	return renderPDFToFile(lib, text, outputPath, cfg)
}

func renderPDF(lib *native.Library, text string, cfg PdfConfig) ([]byte, error) {
	if !lib.HasPDF {
		return nil, ErrPDFUnavailable
	}

	req, err := toPdfRequest(cfg)
	if err != nil {
		return nil, err
	}
	input, err := cString(text)
	if err != nil {
		return nil, err
	}

	var pins callPins
	defer pins.unpin()
	pins.bytes(input)
	pins.pdf(req)
	res := lib.Calls.RenderPDF(input, req)
	return unwrapPdf(lib, res)
}

func renderPDFToFile(lib *native.Library, text, outputPath string, cfg PdfConfig) error {
	if !lib.HasPDF {
		return ErrPDFUnavailable
	}

	req, err := toPdfRequest(cfg)
	if err != nil {
		return err
	}
	input, err := cString(text)
	if err != nil {
		return err
	}
	path, err := cString(outputPath)
	if err != nil {
		return err
	}

	var pins callPins
	defer pins.unpin()
	pins.bytes(input, path)
	pins.pdf(req)
	status := lib.Calls.RenderPDFToFile(input, req, path)
	if status != 0 {
		return &Error{Kind: KindPDF, Msg: fmt.Sprintf("failed to write PDF to %s", outputPath)}
	}
	return nil
}
