// Package app assembles the quickstart web application: the HTML views
// served from the root and the JSON API module.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/web-quickstart/internal/config"
	"github.com/JaimeStill/web-quickstart/internal/infrastructure"
	"github.com/JaimeStill/web-quickstart/pkg/handlers"
	"github.com/JaimeStill/web-quickstart/pkg/middleware"
	"github.com/JaimeStill/web-quickstart/pkg/module"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
	pkgweb "github.com/JaimeStill/web-quickstart/pkg/web"
	"github.com/JaimeStill/web-quickstart/web"
)

// App is the assembled application.
type App struct {
	registry *routes.Registry
	handler  http.Handler
	api      *module.Module
}

// New builds the application on infra. Templates are parsed here, so a
// broken template fails construction.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) (*App, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	registry := routes.NewRegistry()
	templates, err := web.Templates(pkgweb.URLFuncs(registry))
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	router := pkgweb.NewRouter()
	uploadsHandler := registerRoutes(router.Mux(), registry, templates, runtime, domain, cfg)
	router.SetFallback(notFound(templates, runtime.Logger))

	return &App{
		registry: registry,
		handler:  middleware.Metrics(runtime.Metrics)(router),
		api:      newAPIModule(cfg, runtime, registry, uploadsHandler),
	}, nil
}

// Registry returns the URL map of the HTML views.
func (a *App) Registry() *routes.Registry {
	return a.registry
}

// Handler returns the HTML views. Unmatched paths render the custom 404 page.
func (a *App) Handler() http.Handler {
	return a.handler
}

// API returns the JSON API module.
func (a *App) API() *module.Module {
	return a.api
}

func notFound(templates *pkgweb.TemplateSet, logger *slog.Logger) http.Handler {
	message := fmt.Sprintf("%d %s: %s",
		http.StatusNotFound, http.StatusText(http.StatusNotFound), handlers.Description(http.StatusNotFound))

	return handlers.Handle(func(r *http.Request) any {
		body := templates.Response(web.NotFoundPage, pkgweb.Vars{"error": message}, http.StatusNotFound)
		resp, ok := body.(*handlers.Response)
		if !ok {
			logger.Error("render not found page failed", "error", body)
			return body
		}
		resp.Header.Set("X-Something", "A Value")
		return resp
	})
}
