package pipeline

import "strings"

// InjectCSS inserts css as a <style> block before </head>, else right after
// the opening <body> tag, else at the start of content. Empty css leaves
// content unchanged.
func InjectCSS(content, css string) string {
	if css == "" {
		return content
	}

	block := "<style>" + SanitizeCSS(css) + "</style>"
	lower := strings.ToLower(content)

	if i := strings.Index(lower, "</head>"); i != -1 {
		return content[:i] + block + content[i:]
	}
	if i := strings.Index(lower, "<body"); i != -1 {
		if end := strings.IndexByte(content[i:], '>'); end != -1 {
			pos := i + end + 1
			return content[:pos] + block + content[pos:]
		}
	}
	return block + content
}

// SanitizeCSS escapes "</" so a style sheet cannot close its <style> element.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
