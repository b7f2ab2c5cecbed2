package pipeline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var titleParser = goldmark.New().Parser()

// ExtractTitle returns the plain text of the first level-1 heading in src,
// ATX or setext, or "" when there is none. Inline markup is dropped; code
// spans and math keep their source text.
func ExtractTitle(src string) string {
	source := []byte(src)
	doc := titleParser.Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 1 {
			title = strings.TrimSpace(inlineText(h, source))
			if title != "" {
				return ast.WalkStop, nil
			}
		}
		return ast.WalkSkipChildren, nil
	})
	return title
}

func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		case *ast.CodeSpan:
			for t := v.FirstChild(); t != nil; t = t.NextSibling() {
				if seg, ok := t.(*ast.Text); ok {
					sb.Write(seg.Segment.Value(source))
				}
			}
		default:
			sb.WriteString(inlineText(c, source))
		}
	}
	return sb.String()
}
