//go:build bench

package pipeline

import (
	"strings"
	"testing"
)

// BenchmarkInjectCSS runs once per standalone file.
func BenchmarkInjectCSS(b *testing.B) {
	smallHTML := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body><h1>Hello</h1></body>
</html>`

	largeHTML := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>` + strings.Repeat("<p>Paragraph with $x^2$ inline math.</p>\n", 500) + `</body>
</html>`

	smallCSS := "body { margin: 0; }"
	largeCSS := strings.Repeat(".theorem { font-style: italic; margin: 1em 0; }\n", 100)

	inputs := []struct {
		name string
		html string
		css  string
	}{
		{"small_html_small_css", smallHTML, smallCSS},
		{"large_html_large_css", largeHTML, largeCSS},
		{"fragment", "<p>Content</p>", smallCSS},
		{"empty_css", smallHTML, ""},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = InjectCSS(input.html, input.css)
			}
		})
	}
}

// BenchmarkHighlight parses and re-renders the whole document.
func BenchmarkHighlight(b *testing.B) {
	block := "<pre><code class=\"language-go\">func main() {\n\tprintln(\"hi\")\n}</code></pre>\n"
	inputs := []struct {
		name string
		html string
	}{
		{"no_code", strings.Repeat("<p>Text</p>\n", 200)},
		{"one_block", "<p>Intro</p>\n" + block},
		{"fifty_blocks", strings.Repeat(block, 50)},
	}

	h := NewHighlighter("")
	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := h.Highlight(input.html); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkExtractTitle walks the goldmark AST up to the first H1.
func BenchmarkExtractTitle(b *testing.B) {
	doc := "---\n\n" + strings.Repeat("Some paragraph text.\n\n", 100) + "# Late Title\n"
	b.ReportAllocs()
	for b.Loop() {
		_ = ExtractTitle(doc)
	}
}
