// Package markdown renders free-text descriptions from the snapshot as HTML.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Options controls the Markdown dialect.
type Options struct {
	// Typographer turns straight quotes and dashes into their typographic forms.
	Typographer bool
}

// Renderer converts Markdown to HTML. Raw HTML in the source is omitted.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a renderer with GitHub-flavored extensions.
func NewRenderer(opts Options) *Renderer {
	exts := []goldmark.Extender{extension.GFM}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}
	return &Renderer{md: goldmark.New(goldmark.WithExtensions(exts...))}
}

// Render converts src to an HTML fragment with surrounding whitespace trimmed.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
