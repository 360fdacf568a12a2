// Package routing implements the introductory views: static routes,
// variable rules with converters, canonical trailing-slash URLs, and the
// templated hello page.
package routing

import (
	"html"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/web-quickstart/pkg/handlers"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
	"github.com/JaimeStill/web-quickstart/pkg/web"
)

// HelloPage is the template rendered by the hello views.
const HelloPage = "hello.html"

// Handler provides the routing views.
type Handler struct {
	templates *web.TemplateSet
	logger    *slog.Logger
}

// NewHandler creates a routing handler rendering pages from templates.
func NewHandler(templates *web.TemplateSet, logger *slog.Logger) *Handler {
	return &Handler{
		templates: templates,
		logger:    logger.With("handler", "routing"),
	}
}

// Routes returns the routing view group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Description: "Routing and variable rules",
		Routes: []routes.Route{
			{Name: "index", Method: "GET", Pattern: "/", Handler: handlers.Handle(h.Index)},
			{Name: "hello_world", Method: "GET", Pattern: "/hello", Handler: handlers.Handle(h.HelloWorld)},
			{Name: "hello", Method: "GET", Pattern: "/hello/", Handler: handlers.Handle(h.Hello)},
			{Name: "hello", Method: "GET", Pattern: "/hello/{name}", Handler: handlers.Handle(h.Hello)},
			{Name: "profile", Method: "GET", Pattern: "/user/{username}", Handler: handlers.Handle(h.Profile)},
			{Name: "show_post", Method: "GET", Pattern: "/post/{post_id}", Handler: handlers.Handle(h.Post)},
			{Name: "show_subpath", Method: "GET", Pattern: "/path/{subpath...}", Handler: handlers.Handle(h.Subpath)},
			{Name: "show_price", Method: "GET", Pattern: "/price/{value}", Handler: handlers.Handle(h.Price)},
			{Name: "show_item", Method: "GET", Pattern: "/item/{id}", Handler: handlers.Handle(h.Item)},
			{Name: "projects", Method: "GET", Pattern: "/projects/", Handler: handlers.Handle(h.Projects)},
			{Name: "about", Method: "GET", Pattern: "/about", Handler: handlers.Handle(h.About)},
		},
	}
}

// Index is the application root.
func (h *Handler) Index(r *http.Request) any {
	return "The Index Page."
}

// HelloWorld is the minimal application view.
func (h *Handler) HelloWorld(r *http.Request) any {
	return "Hello, World!"
}

// Hello renders the hello page. The name is escaped by the template.
func (h *Handler) Hello(r *http.Request) any {
	return h.templates.Response(HelloPage, web.Vars{"name": r.PathValue("name")})
}

// Profile shows a user name taken from the URL.
func (h *Handler) Profile(r *http.Request) any {
	return "User " + html.EscapeString(r.PathValue("username"))
}

// Post shows a post id. Ids that are not a run of digits do not match.
func (h *Handler) Post(r *http.Request) any {
	id, ok := routes.Int(r, "post_id")
	if !ok {
		return handlers.Abort(http.StatusNotFound)
	}
	return "Post " + id.String()
}

// Subpath echoes the remainder of the path, slashes included.
func (h *Handler) Subpath(r *http.Request) any {
	return "Subpath " + html.EscapeString(routes.Path(r, "subpath"))
}

// Price shows a decimal value such as 2.50.
func (h *Handler) Price(r *http.Request) any {
	value, ok := routes.Float(r, "value")
	if !ok {
		return handlers.Abort(http.StatusNotFound)
	}
	return "Price " + strconv.FormatFloat(value, 'f', -1, 64)
}

// Item shows an item id in canonical UUID form.
func (h *Handler) Item(r *http.Request) any {
	id, ok := routes.UUID(r, "id")
	if !ok {
		return handlers.Abort(http.StatusNotFound)
	}
	return "Item " + id.String()
}

// Projects is served at its canonical trailing-slash URL.
func (h *Handler) Projects(r *http.Request) any {
	return "The Project Page."
}

// About has no trailing slash; /about/ does not match.
func (h *Handler) About(r *http.Request) any {
	return "The About Page."
}
