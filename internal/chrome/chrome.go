// Package chrome prints HTML to PDF with headless Chrome through go-rod.
// It backs the CLI's chrome engine, used when the native engine was built
// without PDF support or when browser layout is preferred.
package chrome

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdacademic/internal/fileutil"
	"github.com/alnah/go-mdacademic/internal/process"
)

// Sentinel errors for browser operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrUnknownPaper   = errors.New("unknown paper size")
)

// DefaultTimeout bounds page loading when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// Paper is a page format in inches.
type Paper struct {
	Width, Height float64
}

// Page formats matching the native engine's paper sizes.
var papers = map[string]Paper{
	"letter": {Width: 8.5, Height: 11},
	"a4":     {Width: 8.27, Height: 11.69},
}

// LookupPaper returns the format for "letter" or "a4".
func LookupPaper(name string) (Paper, error) {
	p, ok := papers[strings.ToLower(name)]
	if !ok {
		return Paper{}, fmt.Errorf("%w: %q", ErrUnknownPaper, name)
	}
	return p, nil
}

const (
	marginInches           = 0.75
	marginBottomWithFooter = 1.0
)

// Options controls page setup.
type Options struct {
	Paper       Paper
	PageNumbers bool
	FontFamily  string // footer font; empty uses a serif stack
}

// Renderer owns one headless browser, launched on first use. A Renderer is
// not safe for concurrent use; the CLI gives each worker its own.
type Renderer struct {
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// New returns a Renderer. A zero timeout means DefaultTimeout.
func New(timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Renderer{timeout: timeout}
}

// LookPath reports the browser binary that would be launched.
func LookPath() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, fileutil.FileExists(bin)
	}
	return launcher.LookPath()
}

func (r *Renderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher, r.browser = l, browser
	return nil
}

// PrintHTML writes content to a temporary file and prints it. Relative asset
// paths in content must already be absolute.
func (r *Renderer) PrintHTML(ctx context.Context, content string, opts Options) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return r.PrintFile(ctx, path, opts)
}

// PrintFile loads a local HTML file and prints it to PDF.
func (r *Renderer) PrintFile(ctx context.Context, path string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if timeout = time.Until(deadline); timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(printOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// Close shuts the browser down and kills whatever the launcher left behind.
func (r *Renderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	if pid := r.launcher.PID(); pid > 0 {
		process.KillTree(pid)
	}
	r.launcher.Kill()
	r.browser, r.launcher = nil, nil
	return err
}

func printOptions(opts Options) *proto.PagePrintToPDF {
	paper := opts.Paper
	if paper == (Paper{}) {
		paper = papers["letter"]
	}

	bottom := marginInches
	if opts.PageNumbers {
		bottom = marginBottomWithFooter
	}

	out := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paper.Width),
		PaperHeight:     floatPtr(paper.Height),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(bottom),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
	if opts.PageNumbers {
		out.DisplayHeaderFooter = true
		out.HeaderTemplate = "<span></span>"
		out.FooterTemplate = footerTemplate(opts.FontFamily)
	}
	return out
}

// footerTemplate centers the page number, the way the native engine does.
func footerTemplate(font string) string {
	if font == "" {
		font = "'Latin Modern Roman', 'Times New Roman', serif"
	}
	return fmt.Sprintf(`<div style="font-size: 10px; font-family: %s; width: 100%%; text-align: center;"><span class="pageNumber"></span></div>`,
		html.EscapeString(font))
}

func floatPtr(v float64) *float64 {
	return &v
}
