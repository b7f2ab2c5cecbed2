package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// ErrHighlight indicates a code block could not be highlighted.
var ErrHighlight = errors.New("syntax highlighting failed")

// Highlighter rewrites fenced code blocks in engine HTML with chroma markup.
// Output uses CSS classes; include CSS() in the page for colors.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter returns a Highlighter for the named chroma style. Unknown
// names fall back to chroma's default style.
func NewHighlighter(style string) *Highlighter {
	if style == "" {
		style = DefaultHighlightStyle
	}
	return &Highlighter{
		style:     styles.Get(style),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// CSS returns the style sheet matching the classes Highlight emits.
func (h *Highlighter) CSS() (string, error) {
	var sb strings.Builder
	if err := h.formatter.WriteCSS(&sb, h.style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return sb.String(), nil
}

// Highlight replaces every <pre><code class="language-X"> block whose
// language chroma knows. Other blocks, and content without code blocks, are
// returned unchanged.
func (h *Highlighter) Highlight(content string) (string, error) {
	if !strings.Contains(content, "language-") {
		return content, nil
	}

	doc, isFragment, err := parseHTML(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}

	var blocks []*html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Pre {
			blocks = append(blocks, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	changed := false
	for _, pre := range blocks {
		ok, err := h.replace(pre)
		if err != nil {
			return "", err
		}
		changed = changed || ok
	}
	if !changed {
		return content, nil
	}
	return renderHTML(doc, isFragment)
}

// replace swaps pre for chroma output. It reports false when pre is not a
// single code element with a known language.
func (h *Highlighter) replace(pre *html.Node) (bool, error) {
	code := pre.FirstChild
	if code == nil || code != pre.LastChild || code.DataAtom != atom.Code {
		return false, nil
	}
	lang := codeLanguage(code)
	if lang == "" {
		return false, nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return false, nil
	}

	iter, err := chroma.Coalesce(lexer).Tokenise(nil, textContent(code))
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrHighlight, lang, err)
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iter); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrHighlight, lang, err)
	}

	parent := pre.Parent
	context := parent
	if context == nil || context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	}
	nodes, err := html.ParseFragment(strings.NewReader(sb.String()), context)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrHighlight, lang, err)
	}
	for _, n := range nodes {
		parent.InsertBefore(n, pre)
	}
	parent.RemoveChild(pre)
	return true, nil
}

func codeLanguage(code *html.Node) string {
	class, _ := attr(code, "class")
	for _, c := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok {
			return lang
		}
	}
	return ""
}
