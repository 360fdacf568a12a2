package main

import (
	"net/http"

	"github.com/JaimeStill/web-quickstart/internal/app"
	"github.com/JaimeStill/web-quickstart/internal/config"
	"github.com/JaimeStill/web-quickstart/internal/infrastructure"
	"github.com/JaimeStill/web-quickstart/pkg/module"
)

// Modules holds the mounted application surfaces.
type Modules struct {
	App *app.App
	API *module.Module
}

// NewModules builds the application and its API module.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	a, err := app.New(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		App: a,
		API: a.API(),
	}, nil
}

// Mount attaches the API module by prefix and serves the HTML views from the
// root for every path no module or native handler claims.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.HandleNativeHandler("/", m.App.Handler())
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !ready(infra) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	router.HandleNativeHandler("GET /metrics", infra.Metrics.Handler())

	return router
}

// ready reports whether startup finished and, when enabled, the database
// connection and migrations succeeded.
func ready(infra *infrastructure.Infrastructure) bool {
	if !infra.Lifecycle.Ready() {
		return false
	}
	return infra.Database == nil || infra.Database.Ready()
}
