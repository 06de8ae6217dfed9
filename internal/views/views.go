// Package views renders the server-side pages. Each page template is parsed
// together with the shared layout and served through gin's HTMLRender.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/madhurinidan/clinic-web/pkg/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutFile = "templates/layout.html"

// Static returns the embedded static assets rooted at static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer holds one template set per page
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// New parses every page with the layout. Timestamps are shown in loc, the
// clinic's zone; nil means UTC.
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := funcMap(loc)

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Instance implements render.HTMLRender
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		tmpl = r.pages["not_found"]
	}
	return render.HTML{Template: tmpl, Name: "layout", Data: data}
}

// Has reports whether a page exists
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// InZone formats t in loc, or "" for the zero time
func InZone(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(layout)
}

func funcMap(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"date":     func(t time.Time) string { return InZone(t, loc, "02 Jan 2006") },
		"clock":    func(t time.Time) string { return InZone(t, loc, "03:04 PM") },
		"datetime": func(t time.Time) string { return InZone(t, loc, "02 Jan 2006, 03:04 PM") },
		"slug":     slug.Generate,
		"add":      func(a, b int) int { return a + b },
		"join":     strings.Join,
		"orDefault": func(fallback, value string) string {
			if value == "" {
				return fallback
			}
			return value
		},
	}
}
