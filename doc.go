// Package mdacademic renders markdown-academic documents (Markdown with math,
// citations, cross-references and theorem environments) to HTML and PDF by
// calling the markdown-academic native engine.
//
// # Quick Start
//
// Render a document in one call:
//
//	html, err := mdacademic.Render("# Hello\n\nThe equation $E=mc^2$ is famous.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Options select the math backend, a full HTML document, or a base path for
// bibliography files:
//
//	html, err := mdacademic.Render(src,
//	    mdacademic.WithMathBackend(mdacademic.MathMathML),
//	    mdacademic.WithStandalone(true),
//	)
//
// # Parsed Documents
//
// Parse once and render several times. A Document owns an engine handle that
// must be released with Close, or scoped with WithDocument:
//
//	err := mdacademic.WithDocument(src, func(doc *mdacademic.Document) error {
//	    fragment, err := doc.Render(mdacademic.DefaultRenderConfig())
//	    ...
//	})
//
// # PDF
//
// PDF output exists only when the engine was built with its "pdf" feature.
// Check HasPDFSupport before calling RenderPDF or RenderPDFToFile:
//
//	pdf, err := mdacademic.RenderPDF(src, mdacademic.DefaultPdfConfig())
//
// # Native Library
//
// The shared library is located on first use, in this order: the
// MARKDOWN_ACADEMIC_LIB environment variable, the executable's directory (and
// ../lib), rust/target/release and rust/target/debug, then the system loader.
// It is loaded once per process. No cgo is required.
//
// # Errors
//
// Every error from this package matches ErrMarkdownAcademic with errors.Is.
// Engine failures are *Error values whose Kind tells parse, render,
// resolution and PDF failures apart; the engine's message is kept verbatim.
package mdacademic
