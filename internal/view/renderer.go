// Package view renders the HTML pages of the app from embedded pongo2 templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates
var templateFiles embed.FS

// Page template names.
const (
	PageLanding   = "landing.html"
	PageLogin     = "auth_login.html"
	PageSignup    = "auth_signup.html"
	PageDashboard = "dashboard.html"
	PageTickets   = "tickets.html"
	PageError     = "error.html"
)

var pages = []string{PageLanding, PageLogin, PageSignup, PageDashboard, PageTickets, PageError}

// Renderer executes page templates. It is safe for concurrent use.
type Renderer struct {
	set     *pongo2.TemplateSet
	appName string
}

// NewRenderer parses every page up front so a broken template fails at boot.
func NewRenderer(appName string) (*Renderer, error) {
	root, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, err
	}
	set := pongo2.NewSet("ticketapp", embedLoader{fsys: root})
	for _, name := range pages {
		if _, err := set.FromCache(name); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
	}
	return &Renderer{set: set, appName: appName}, nil
}

// Render executes the named page with data. app_name is always available.
func (r *Renderer) Render(name string, data pongo2.Context) (string, error) {
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return "", err
	}
	ctx := pongo2.Context{"app_name": r.appName}
	ctx.Update(data)
	return tpl.Execute(ctx)
}

// embedLoader resolves every template name from the root of fsys.
type embedLoader struct {
	fsys fs.FS
}

func (l embedLoader) Abs(_, name string) string {
	return path.Clean(strings.TrimPrefix(name, "/"))
}

func (l embedLoader) Get(name string) (io.Reader, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
