package app

import (
	"github.com/JaimeStill/web-quickstart/internal/config"
	"github.com/JaimeStill/web-quickstart/internal/login"
	"github.com/JaimeStill/web-quickstart/internal/uploads"
	"github.com/JaimeStill/web-quickstart/pkg/middleware"
	"github.com/JaimeStill/web-quickstart/pkg/session"
)

// Domain holds the systems the views are built on.
type Domain struct {
	Uploads  uploads.System
	Auth     *login.Authenticator
	Sessions *session.Manager
	Limiter  *middleware.Limiter
}

// NewDomain creates all domain systems from the runtime. Uploads are
// recorded in Postgres when the database is enabled and in memory otherwise.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	var ledger uploads.Ledger
	if runtime.Database != nil {
		ledger = uploads.NewPostgresLedger(runtime.Database.Connection(), runtime.Logger)
	} else {
		ledger = uploads.NewMemoryLedger()
	}

	var limiter *middleware.Limiter
	if !cfg.RateLimit.Disabled {
		limiter = middleware.NewLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.Proxies())
	}

	return &Domain{
		Uploads:  uploads.New(runtime.Storage, ledger, runtime.Logger),
		Auth:     login.NewAuthenticator(cfg.Auth.Credentials()),
		Sessions: session.New(&cfg.Session),
		Limiter:  limiter,
	}
}
