package api

import (
	"net/http"

	"github.com/JaimeStill/image-forge/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, runtime *Runtime, domain *Domain) {
	conversionHandler := NewConversionHandler(domain.Conversion, runtime.Logger, runtime.MaxRequestSize)

	historyGroup := historyDisabled(runtime.Logger)
	if domain.History != nil {
		historyGroup = domain.History.Handler().Routes()
	}

	groups := []routes.Group{
		conversionHandler.Routes(),
		historyGroup,
	}
	doc := buildSpec(runtime.OpenAPI, BasePath, groups)

	routes.Register(mux, BasePath, append(groups, openapiRoutes(doc, runtime.Logger))...)
	routes.Register(mux, "", health(runtime.Lifecycle))
}
