// Package web embeds the quickstart templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"

	pkgweb "github.com/JaimeStill/web-quickstart/pkg/web"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page template names.
const (
	HelloPage    = "hello.html"
	CookiesPage  = "cookies.html"
	NotFoundPage = "404_error_page.html"
	LoginPage    = "login.html"
	UploadPage   = "upload.html"
)

var pages = []string{
	HelloPage,
	CookiesPage,
	NotFoundPage,
	LoginPage,
	UploadPage,
}

// Templates parses every page against the shared layout with funcs installed.
func Templates(funcs template.FuncMap) (*pkgweb.TemplateSet, error) {
	return pkgweb.NewTemplateSet(
		templateFS,
		"templates/layouts/*.html",
		"templates/pages",
		"layout.html",
		pages,
		funcs,
	)
}

// Static returns the static asset tree rooted at its top directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
