package workspace

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/logfields"
)

const (
	// PagesDir is the subdirectory holding one page per entity.
	PagesDir = "gameobjects"
	// IndexFile is the landing page at the output root.
	IndexFile = "index.html"

	dirMode  = 0o750
	fileMode = 0o644
)

// Manager writes pages into a fixed output directory.
type Manager struct {
	root string
}

// NewManager returns a manager rooted at root. Nothing is created until Create.
func NewManager(root string) *Manager {
	return &Manager{root: root}
}

// Root returns the output directory.
func (m *Manager) Root() string {
	return m.root
}

// Create ensures the output root and the pages subdirectory exist.
// Existing content is left alone.
func (m *Manager) Create() error {
	if m.root == "" {
		return ferrors.ConfigError("output directory not set").Build()
	}
	pages := filepath.Join(m.root, PagesDir)
	if err := os.MkdirAll(pages, dirMode); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create output directory").
			WithContext("path", pages).
			Fatal().
			Build()
	}
	slog.Debug("Output directory ready", logfields.Output(m.root))
	return nil
}

// PagePath returns the file path of an entity page.
func (m *Manager) PagePath(id int) string {
	return filepath.Join(m.root, PagesDir, strconv.Itoa(id)+".html")
}

// IndexPath returns the file path of the index page.
func (m *Manager) IndexPath() string {
	return filepath.Join(m.root, IndexFile)
}

// WritePage writes the page for entity id, replacing any previous file.
func (m *Manager) WritePage(id int, content string) (string, error) {
	path := m.PagePath(id)
	return path, writeFile(path, content)
}

// WriteIndex writes index.html, replacing any previous file.
func (m *Manager) WriteIndex(content string) (string, error) {
	path := m.IndexPath()
	return path, writeFile(path, content)
}

func writeFile(path, content string) error {
	// #nosec G306 -- generated pages are meant to be world-readable
	if err := os.WriteFile(path, []byte(content), fileMode); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write page").
			WithContext("path", path).
			Fatal().
			Build()
	}
	slog.Debug("Wrote page", logfields.Path(path))
	return nil
}
