package app

import (
	"net/http"

	"github.com/JaimeStill/web-quickstart/internal/config"
	"github.com/JaimeStill/web-quickstart/internal/cookies"
	"github.com/JaimeStill/web-quickstart/internal/login"
	"github.com/JaimeStill/web-quickstart/internal/responses"
	"github.com/JaimeStill/web-quickstart/internal/routing"
	"github.com/JaimeStill/web-quickstart/internal/uploads"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
	pkgweb "github.com/JaimeStill/web-quickstart/pkg/web"
	"github.com/JaimeStill/web-quickstart/web"
)

// StaticPrefix is the URL prefix for embedded static assets.
const StaticPrefix = "/static"

func registerRoutes(
	mux *http.ServeMux,
	registry *routes.Registry,
	templates *pkgweb.TemplateSet,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) *uploads.Handler {
	routingHandler := routing.NewHandler(templates, runtime.Logger)
	loginHandler := login.NewHandler(domain.Auth, domain.Sessions, templates, registry, domain.Limiter, runtime.Logger)
	cookiesHandler := cookies.NewHandler(templates, runtime.Logger)
	uploadsHandler := uploads.NewHandler(domain.Uploads, templates, runtime.Logger, runtime.Pagination, cfg.Storage.MaxUploadSizeBytes())
	responsesHandler := responses.NewHandler(registry, runtime.Logger)

	routes.Register(
		mux,
		registry,
		routingHandler.Routes(),
		loginHandler.Routes(),
		cookiesHandler.Routes(),
		uploadsHandler.Routes(),
		responsesHandler.Routes(),
	)

	registry.SetStatic(StaticPrefix)
	mux.Handle("GET "+StaticPrefix+"/{filename...}", pkgweb.Static(web.Static()))

	return uploadsHandler
}
