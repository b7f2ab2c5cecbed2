package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// assetAttrs lists, per element, the attribute holding a local file path.
var assetAttrs = map[string]string{
	"img":    "src",
	"a":      "href",
	"link":   "href",
	"object": "data",
}

// RewriteRelativePaths turns relative asset references into absolute
// file:// URLs under baseDir, so HTML loaded from a temporary file still
// finds the document's images. An empty baseDir returns content unchanged.
// URLs, anchors, absolute paths and paths escaping baseDir are left alone.
func RewriteRelativePaths(content, baseDir string) (string, error) {
	if baseDir == "" {
		return content, nil
	}

	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(content)
	if err != nil {
		return "", err
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if key, ok := assetAttrs[n.Data]; ok {
				rewriteAttr(n, key, absDir)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return renderHTML(doc, isFragment)
}

func rewriteAttr(n *html.Node, key, dir string) {
	for i, a := range n.Attr {
		if a.Key != key || !isLocalRelative(a.Val) {
			continue
		}
		abs := filepath.Join(dir, filepath.FromSlash(a.Val))
		if !within(abs, dir) {
			continue
		}
		n.Attr[i].Val = fileURL(abs)
	}
}

func isLocalRelative(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}
	return !filepath.IsAbs(p) && !strings.HasPrefix(p, "/")
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileURL(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
