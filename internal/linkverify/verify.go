package linkverify

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

// BrokenLink is an internal link whose target file does not exist.
type BrokenLink struct {
	Page   string // Page holding the link, slash-separated and relative to the root
	URL    string // Link as written in the page
	Text   string // Link text
	Target string // Root-relative path the link resolved to
}

// Report summarizes a verification run.
type Report struct {
	Pages  int
	Links  int
	Broken []BrokenLink
}

// OK reports whether no broken links were found.
func (r *Report) OK() bool {
	return len(r.Broken) == 0
}

// Err returns a validation error describing the broken links, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	first := r.Broken[0]
	return errors.ValidationError("broken internal links").
		WithContext("count", len(r.Broken)).
		WithContext("page", first.Page).
		WithContext("url", first.URL).
		Build()
}

// VerifyTree walks every .html file under root and checks that each internal
// link resolves to an existing file. Root-relative links ("/x.html") resolve
// against root; other links resolve against the page's directory.
func VerifyTree(ctx context.Context, root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.FileSystemError("site root not found").
			WithContext("path", root).
			WithCause(err).
			Build()
	}

	report := &Report{}
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		return report.verifyPage(root, p, filepath.ToSlash(rel))
	})
	if walkErr != nil {
		if errors.IsClassified(walkErr) {
			return nil, walkErr
		}
		return nil, errors.WrapError(walkErr, errors.CategoryFileSystem, "walk site").
			WithContext("path", root).
			Build()
	}
	return report, nil
}

func (r *Report) verifyPage(root, file, rel string) error {
	links, err := ExtractLinks(file)
	if err != nil {
		return err
	}
	r.Pages++
	for _, link := range links {
		if !ShouldVerifyLink(link) {
			continue
		}
		r.Links++
		target, ok := resolveTarget(rel, link.URL)
		if ok && fileExists(filepath.Join(root, filepath.FromSlash(target))) {
			continue
		}
		r.Broken = append(r.Broken, BrokenLink{Page: rel, URL: link.URL, Text: link.Text, Target: target})
	}
	return nil
}

// resolveTarget maps a link on page (root-relative, slash-separated) to a
// root-relative file path. ok is false when the link escapes the root.
func resolveTarget(page, linkURL string) (string, bool) {
	u, err := url.Parse(linkURL)
	if err != nil {
		return linkURL, false
	}
	p := u.Path
	if p == "" {
		return page, true
	}
	var joined string
	if strings.HasPrefix(p, "/") {
		joined = path.Clean(p)
	} else {
		joined = path.Join("/", path.Dir(page), p)
	}
	if strings.HasSuffix(p, "/") {
		joined = path.Join(joined, "index.html")
	}
	target := strings.TrimPrefix(joined, "/")
	if target == "" {
		target = "index.html"
	}
	// A relative link climbing above the root cleans back to "/", so check the raw depth.
	if !strings.HasPrefix(p, "/") && escapesRoot(path.Dir(page), p) {
		return target, false
	}
	return target, true
}

func escapesRoot(dir, rel string) bool {
	depth := 0
	if dir != "." {
		depth = len(strings.Split(dir, "/"))
	}
	for _, seg := range strings.Split(rel, "/") {
		switch seg {
		case "..":
			depth--
			if depth < 0 {
				return true
			}
		case ".", "":
		default:
			depth++
		}
	}
	return false
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return fileExists(filepath.Join(p, "index.html"))
	}
	return true
}
