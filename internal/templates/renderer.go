package templates

import (
	"bytes"
	"embed"
	"html/template"
	"sort"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/markdown"
)

//go:embed layouts/*.html
var layoutFS embed.FS

const baseLayout = "layouts/base.html"

// Page template names.
const (
	Index      = "index"
	Settlement = "settlement"
	District   = "district"
	Business   = "business"
	Character  = "character"
	Residence  = "residence"
)

const (
	rootLayout = "layout"
	layoutDir  = "layouts/"
	layoutExt  = ".html"
)

var pageNames = []string{Index, Settlement, District, Business, Character, Residence}

// Options configures template rendering.
type Options struct {
	// SiteTitle is shown in the page header, footer and <title>.
	SiteTitle string
	// Markdown renders description fields through goldmark when true.
	// Otherwise descriptions are emitted as escaped plain text.
	Markdown bool
}

// Renderer executes page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded layouts.
func NewRenderer(opts Options) (*Renderer, error) {
	md := markdown.NewRenderer(markdown.Options{})

	funcs := template.FuncMap{
		"siteTitle": func() string { return opts.SiteTitle },
		"markdown": func(s string) (template.HTML, error) {
			if !opts.Markdown {
				return template.HTML(template.HTMLEscapeString(s)), nil // #nosec G203 -- escaped above
			}
			out, err := md.Render(s)
			if err != nil {
				return "", err
			}
			return template.HTML(out), nil // #nosec G203 -- goldmark drops raw HTML by default
		},
	}

	base, err := template.New("base").Funcs(funcs).Option("missingkey=error").ParseFS(layoutFS, baseLayout)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "parse base layout").
			WithContext("template", baseLayout).
			Build()
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, cloneErr := base.Clone()
		if cloneErr != nil {
			return nil, ferrors.WrapError(cloneErr, ferrors.CategoryInternal, "clone base layout").Build()
		}
		file := layoutDir + name + layoutExt
		if _, parseErr := t.ParseFS(layoutFS, file); parseErr != nil {
			return nil, ferrors.WrapError(parseErr, ferrors.CategoryInternal, "parse page template").
				WithContext("template", file).
				Build()
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Names lists the page templates known to the renderer.
func (r *Renderer) Names() []string {
	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render executes the named page template with data.
func (r *Renderer) Render(name string, data any) (string, error) {
	t, ok := r.pages[name]
	if !ok {
		return "", ferrors.ConfigError("unknown template").
			WithContext("template", name).
			Build()
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, rootLayout, data); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryRender, "render template").
			WithContext("template", name).
			Build()
	}
	return buf.String(), nil
}
