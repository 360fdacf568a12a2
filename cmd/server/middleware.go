package main

import (
	"github.com/JaimeStill/web-quickstart/internal/config"
	"github.com/JaimeStill/web-quickstart/internal/infrastructure"
	"github.com/JaimeStill/web-quickstart/pkg/middleware"
)

// buildMiddleware creates the outer middleware stack: request logging, then
// panic recovery.
func buildMiddleware(infra *infrastructure.Infrastructure, cfg *config.Config) middleware.System {
	middlewareSys := middleware.New()
	middlewareSys.Use(middleware.Logger(infra.Logger))
	middlewareSys.Use(middleware.Recover(infra.Logger, cfg.Development()))
	return middlewareSys
}
