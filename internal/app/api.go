package app

import (
	"net/http"

	"github.com/JaimeStill/web-quickstart/internal/config"
	"github.com/JaimeStill/web-quickstart/internal/uploads"
	"github.com/JaimeStill/web-quickstart/pkg/handlers"
	"github.com/JaimeStill/web-quickstart/pkg/middleware"
	"github.com/JaimeStill/web-quickstart/pkg/module"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
	pkgweb "github.com/JaimeStill/web-quickstart/pkg/web"
)

func newAPIModule(
	cfg *config.Config,
	runtime *Runtime,
	registry *routes.Registry,
	uploadsHandler *uploads.Handler,
) *module.Module {
	router := pkgweb.NewRouter()

	routes.Register(router.Mux(), nil, uploadsHandler.APIRoutes())
	router.HandleFunc("GET /urls", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, registry.Entries())
	})
	router.SetFallback(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	}))

	m := module.New(cfg.API.BasePath, middleware.Metrics(runtime.Metrics)(router))
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))

	return m
}
