package linkverify

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL       string // The URL or path
	Text      string // Link text
	Tag       string // HTML tag (a, img, link, script)
	Attribute string // Attribute containing the link (href, src)
	Line      int    // Approximate element ordinal in the document
}

// ExtractLinks extracts all links from an HTML file.
func ExtractLinks(htmlPath string) ([]*Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithSeverity(errors.SeverityError).WithContext("html_path", htmlPath).Build()
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	return ExtractLinksFromReader(file)
}

// ExtractLinksFromReader extracts all links from an HTML reader.
func ExtractLinksFromReader(r io.Reader) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").WithSeverity(errors.SeverityError).Build()
	}

	var links []*Link
	var lineNum int

	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			lineNum++
			if l := elementLink(n, lineNum); l != nil {
				links = append(links, l)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}

	extract(doc)
	return links, nil
}

// elementLink returns the link carried by a single element, if any.
func elementLink(n *html.Node, lineNum int) *Link {
	var attr, text string
	switch n.Data {
	case "a":
		attr, text = "href", extractText(n)
	case "link":
		attr, text = "href", getAttr(n, "rel")
	case "img":
		attr, text = "src", getAttr(n, "alt")
	case "script":
		attr = "src"
	default:
		return nil
	}
	val := getAttr(n, attr)
	if val == "" {
		return nil
	}
	return &Link{URL: val, Text: text, Tag: n.Data, Attribute: attr, Line: lineNum}
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}

	return strings.TrimSpace(text.String())
}

// ShouldVerifyLink reports whether link points at a file inside the site.
// Placeholders ("#"), fragments, special protocols and external URLs are skipped.
func ShouldVerifyLink(link *Link) bool {
	if link.URL == "" || strings.HasPrefix(link.URL, "#") {
		return false
	}

	if strings.HasPrefix(link.URL, "mailto:") ||
		strings.HasPrefix(link.URL, "tel:") ||
		strings.HasPrefix(link.URL, "javascript:") ||
		strings.HasPrefix(link.URL, "data:") {
		return false
	}

	u, err := url.Parse(link.URL)
	if err != nil {
		return true
	}
	return u.Scheme == "" && u.Host == ""
}
