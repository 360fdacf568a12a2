// Package cookies implements the views that read and set the plain
// username cookie.
package cookies

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/web-quickstart/pkg/handlers"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
	"github.com/JaimeStill/web-quickstart/pkg/web"
)

// CookiesPage is the template rendered by every cookie view.
const CookiesPage = "cookies.html"

// Cookie name and the value the set views store.
const (
	Name         = "username"
	DefaultValue = "John Doe"
)

// Handler provides the cookie views.
type Handler struct {
	templates *web.TemplateSet
	logger    *slog.Logger
}

// NewHandler creates a cookies handler rendering pages from templates.
func NewHandler(templates *web.TemplateSet, logger *slog.Logger) *Handler {
	return &Handler{
		templates: templates,
		logger:    logger.With("handler", "cookies"),
	}
}

// Routes returns the cookie view group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Description: "Reading and storing cookies",
		Routes: []routes.Route{
			{Name: "read_cookies", Method: "GET", Pattern: "/read_cookies", Handler: handlers.Handle(h.Read)},
			{Name: "set_cookies", Method: "GET", Pattern: "/set_cookies", Handler: handlers.Handle(h.Set)},
			{Name: "cookies", Method: "GET", Pattern: "/cookies", Handler: handlers.Handle(h.Combined)},
			{Name: "cookies", Method: "POST", Pattern: "/cookies", Handler: handlers.Handle(h.Combined)},
		},
	}
}

// Read renders the username cookie, which may be absent.
func (h *Handler) Read(r *http.Request) any {
	username, _ := readUsername(r)
	return h.templates.Response(CookiesPage, web.Vars{"username": username})
}

// Set renders the page without a username and stores the cookie.
func (h *Handler) Set(r *http.Request) any {
	return h.withCookie(h.templates.Response(CookiesPage, web.Vars{}))
}

// Combined greets a returning client by cookie, or stores the cookie on the
// first visit.
func (h *Handler) Combined(r *http.Request) any {
	if username, ok := readUsername(r); ok {
		return h.templates.Response(CookiesPage, web.Vars{"username": username})
	}
	return h.withCookie(h.templates.Response(CookiesPage, web.Vars{}))
}

func (h *Handler) withCookie(body any) any {
	resp, ok := body.(*handlers.Response)
	if !ok {
		return body
	}
	resp.SetCookie(&http.Cookie{Name: Name, Value: DefaultValue, Path: "/"})
	return resp
}

func readUsername(r *http.Request) (string, bool) {
	c, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	return c.Value, true
}
