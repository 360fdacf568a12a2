// Package web renders pre-parsed html/template pages, serves embedded static
// files, and routes requests with a replaceable 404 fallback.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/JaimeStill/web-quickstart/pkg/handlers"
)

// Vars is the data passed to a page template. Keys are addressed directly,
// as in {{ .name }}.
type Vars map[string]any

// TemplateSet holds pre-parsed templates, one clone of the layouts per page.
// Templates are parsed once at startup so that a broken template fails the
// service before it accepts requests.
type TemplateSet struct {
	pages  map[string]*template.Template
	layout string
}

// NewTemplateSet parses the layouts matched by layoutGlob, then clones them
// for each page under pageSubdir. Every page is rendered by executing the
// layout template, which pulls in the page's blocks. funcs is installed
// before parsing and may be nil.
func NewTemplateSet(fsys fs.FS, layoutGlob, pageSubdir, layout string, pages []string, funcs template.FuncMap) (*TemplateSet, error) {
	layouts, err := template.New(layout).Funcs(funcs).ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	if t := layouts.Lookup(layout); t == nil || t.Tree == nil {
		return nil, fmt.Errorf("layout not found: %s", layout)
	}

	pageSub, err := fs.Sub(fsys, pageSubdir)
	if err != nil {
		return nil, err
	}

	pageTemplates := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", p, err)
		}
		if _, err := t.ParseFS(pageSub, p); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", p, err)
		}
		pageTemplates[p] = t
	}

	return &TemplateSet{
		pages:  pageTemplates,
		layout: layout,
	}, nil
}

// Render executes page with data into w.
func (ts *TemplateSet) Render(w io.Writer, page string, data any) error {
	t, ok := ts.pages[page]
	if !ok {
		return fmt.Errorf("template not found: %s", page)
	}
	return t.ExecuteTemplate(w, ts.layout, data)
}

// Response renders page into a handlers.Response. Rendering happens before
// anything is written, so a template error becomes a clean 500 error value.
func (ts *TemplateSet) Response(page string, data any, status ...int) any {
	var buf bytes.Buffer
	if err := ts.Render(&buf, page, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return handlers.MakeResponse(buf.Bytes(), status...)
}
