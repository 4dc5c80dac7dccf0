package web

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// ErrTemplateNotFound is returned when no template exists for a name.
var ErrTemplateNotFound = errors.New("template not found")

// Templates resolves page templates by file name and renders them.
//
// Embedded templates are parsed once when the engine is created. Templates
// loaded from a directory are parsed on every render so edits are visible
// without a restart.
type Templates struct {
	fsys   fs.FS
	reload bool
	parsed *template.Template // nil when reload is set
}

// NewTemplates parses every *.html file in fsys up front.
func NewTemplates(fsys fs.FS) (*Templates, error) {
	parsed, err := template.ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{fsys: fsys, parsed: parsed}, nil
}

// NewReloadingTemplates reads templates from fsys on each render.
func NewReloadingTemplates(fsys fs.FS) *Templates {
	return &Templates{fsys: fsys, reload: true}
}

// LoadTemplates picks the template source: the directory when dir is set,
// else the templates compiled into the binary.
func LoadTemplates(dir string) (*Templates, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("templates dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("templates dir: %s is not a directory", dir)
		}
		return NewReloadingTemplates(os.DirFS(dir)), nil
	}
	sub, err := fs.Sub(EmbeddedTemplatesFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return NewTemplates(sub)
}

// Render executes the template called name into w.
func (t *Templates) Render(w io.Writer, name string, data interface{}) error {
	tmpl, err := t.lookup(name)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	return nil
}

func (t *Templates) lookup(name string) (*template.Template, error) {
	// names are plain file names; ParseFS would treat glob characters as a pattern
	if !fs.ValidPath(name) || path.Base(name) != name || strings.ContainsAny(name, `*?[\`) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	if !t.reload {
		tmpl := t.parsed.Lookup(name)
		if tmpl == nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return tmpl, nil
	}

	if _, err := fs.Stat(t.fsys, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("stat template %s: %w", name, err)
	}
	tmpl, err := template.ParseFS(t.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return tmpl, nil
}
