// Package responses demonstrates how values returned from views are
// converted into HTTP responses.
package responses

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/web-quickstart/pkg/handlers"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
)

// Handler provides the response conversion demo views.
type Handler struct {
	urls   *routes.Registry
	logger *slog.Logger
}

// NewHandler creates a responses handler. urls resolves the static asset
// linked from the dict view.
func NewHandler(urls *routes.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		urls:   urls,
		logger: logger.With("handler", "responses"),
	}
}

// Routes returns the responses view group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/responses",
		Description: "Response conversion",
		Routes: []routes.Route{
			{Name: "response_string", Method: "GET", Pattern: "/string", Handler: handlers.Handle(h.String)},
			{Name: "response_dict", Method: "GET", Pattern: "/dict", Handler: handlers.Handle(h.Dict)},
			{Name: "response_tuple", Method: "GET", Pattern: "/tuple", Handler: handlers.Handle(h.Tuple)},
			{Name: "response_headers", Method: "GET", Pattern: "/headers", Handler: handlers.Handle(h.Headers)},
			{Name: "response_make", Method: "GET", Pattern: "/make", Handler: handlers.Handle(h.Make)},
		},
	}
}

// String returns a plain body sent as text/html with status 200.
func (h *Handler) String(r *http.Request) any {
	return "Hello from a string."
}

// Dict returns a map that is encoded as JSON.
func (h *Handler) Dict(r *http.Request) any {
	stylesheet, err := h.urls.URLFor(routes.StaticEndpoint, map[string]string{"filename": "style.css"})
	if err != nil {
		return err
	}
	return map[string]any{
		"username":   "john",
		"theme":      "dark",
		"stylesheet": stylesheet,
	}
}

// Tuple returns a body with an explicit status and headers.
func (h *Handler) Tuple(r *http.Request) any {
	return handlers.Response{
		Body:   "Created with a status and headers.",
		Status: http.StatusCreated,
		Header: http.Header{"X-Response-Kind": {"tuple"}},
	}
}

// Headers returns a body with extra headers and the default status.
func (h *Handler) Headers(r *http.Request) any {
	return handlers.Response{
		Body:   "Sent with extra headers.",
		Header: http.Header{"X-Response-Kind": {"headers"}},
	}
}

// Make builds the response first and modifies it before returning.
func (h *Handler) Make(r *http.Request) any {
	resp := handlers.MakeResponse("Built with MakeResponse.", http.StatusAccepted)
	resp.Header.Set("X-Something", "A Value")
	return resp
}
