package api

import (
	"github.com/JaimeStill/image-forge/internal/config"
	"github.com/JaimeStill/image-forge/internal/infrastructure"
	"github.com/JaimeStill/image-forge/pkg/openapi"
	"github.com/JaimeStill/image-forge/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination     pagination.Config
	OpenAPI        *openapi.Config
	MaxRequestSize int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Codec:     infra.Codec,
		},
		Pagination:     cfg.Pagination,
		OpenAPI:        &cfg.OpenAPI,
		MaxRequestSize: cfg.Server.MaxRequestSize,
	}
}
