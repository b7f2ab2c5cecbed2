package native

// Handle is an opaque pointer to an engine-owned parsed document.
// Zero means no document.
type Handle uintptr

// RenderRequest mirrors MdAcademicConfig.
//
//	typedef struct {
//	    int math_backend;  // 0 = KaTeX, 1 = MathJax, 2 = MathML
//	    int standalone;    // 0 = fragment, 1 = full HTML document
//	    const char* base_path;
//	} MdAcademicConfig;
type RenderRequest struct {
	MathBackend int32
	Standalone  int32
	BasePath    *byte
}

// PdfRequest mirrors MdAcademicPdfConfig.
type PdfRequest struct {
	PaperSize   int32
	FontSize    int32
	TitlePage   int32
	PageNumbers int32
	Title       *byte
	BasePath    *byte
}

// RenderResult mirrors MdAcademicResult. Exactly one field is set.
type RenderResult struct {
	Data  *byte
	Error *byte
}

// PdfResult mirrors MdAcademicPdfResult.
type PdfResult struct {
	Data  *byte
	Len   uintptr
	Error *byte
}

// Calls is the table of engine entry points bound at load time.
// The three PDF entries are nil when the engine was built without PDF support.
type Calls struct {
	ParseAndRender  func(input *byte, cfg *RenderRequest) RenderResult
	Parse           func(input *byte) Handle
	ParseWithConfig func(input *byte, cfg *RenderRequest) Handle
	RenderHTML      func(doc Handle, cfg *RenderRequest) RenderResult
	FreeString      func(s *byte)
	FreeDocument    func(doc Handle)
	FreeResult      func(r RenderResult)
	Version         func() *byte

	RenderPDF       func(input *byte, cfg *PdfRequest) PdfResult
	RenderPDFToFile func(input *byte, cfg *PdfRequest, outputPath *byte) int32
	FreePDFData     func(data *byte, n uintptr)
}

// symbol pairs an exported C name with the Calls field it binds to.
type symbol struct {
	name string
	fn   any
}

// Exported symbol names.
const (
	SymParseAndRender  = "mdacademic_parse_and_render"
	SymParse           = "mdacademic_parse"
	SymParseWithConfig = "mdacademic_parse_with_config"
	SymRenderHTML      = "mdacademic_render_html"
	SymFreeString      = "mdacademic_free_string"
	SymFreeDocument    = "mdacademic_free_document"
	SymFreeResult      = "mdacademic_free_result"
	SymVersion         = "mdacademic_version"
	SymRenderPDF       = "mdacademic_render_pdf"
	SymRenderPDFToFile = "mdacademic_render_pdf_to_file"
	SymFreePDFData     = "mdacademic_free_pdf_data"
)

func (c *Calls) required() []symbol {
	return []symbol{
		{SymParseAndRender, &c.ParseAndRender},
		{SymParse, &c.Parse},
		{SymParseWithConfig, &c.ParseWithConfig},
		{SymRenderHTML, &c.RenderHTML},
		{SymFreeString, &c.FreeString},
		{SymFreeDocument, &c.FreeDocument},
		{SymFreeResult, &c.FreeResult},
		{SymVersion, &c.Version},
	}
}

// optional lists the symbols compiled in with the engine's "pdf" feature.
func (c *Calls) optional() []symbol {
	return []symbol{
		{SymRenderPDF, &c.RenderPDF},
		{SymRenderPDFToFile, &c.RenderPDFToFile},
		{SymFreePDFData, &c.FreePDFData},
	}
}

// hasPDF reports whether every optional PDF entry point is bound.
func (c *Calls) hasPDF() bool {
	return c.RenderPDF != nil && c.RenderPDFToFile != nil && c.FreePDFData != nil
}
