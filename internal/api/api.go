// Package api exposes the converter over HTTP for editor front-ends. Requests
// carry the selection and options; responses carry the aggregate report.
package api

import (
	"net/http"

	"github.com/JaimeStill/image-forge/internal/config"
	"github.com/JaimeStill/image-forge/internal/infrastructure"
	"github.com/JaimeStill/image-forge/pkg/middleware"
)

// BasePath prefixes every API route except the health probes.
const BasePath = "/api"

// NewHandler builds the HTTP handler for `imgconv serve`: domain systems,
// routes, and the middleware chain.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) http.Handler {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime.Infrastructure)

	mux := http.NewServeMux()
	registerRoutes(mux, runtime, domain)

	mw := []func(http.Handler) http.Handler{
		middleware.Logger(runtime.Logger),
		middleware.TrimSlash(),
	}
	if cors := cfg.Server.CORS; cors.Enabled {
		mw = append(mw, middleware.CORS(middleware.CORSOptions{
			Origins:        cors.Origins,
			AllowedMethods: cors.AllowedMethods,
			AllowedHeaders: cors.AllowedHeaders,
			MaxAge:         cors.MaxAge,
		}))
	}

	mw = append(mw, middleware.RestrictOrigins(cfg.Server.CORS.Origins))

	return middleware.Apply(mux, mw...)
}
