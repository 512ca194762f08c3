package history

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/image-forge/pkg/handlers"
	"github.com/JaimeStill/image-forge/pkg/pagination"
	"github.com/JaimeStill/image-forge/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for batch history.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a new history HTTP handler.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "history"),
		pagination: pagination,
	}
}

// Routes returns the route configuration for history endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/batches",
		Tags:        []string{"History"},
		Description: "Recorded batch reports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
		},
	}
}

// List handles GET / - returns paginated batches with optional filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find handles GET /{id} - returns one batch with its files.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	b, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, b)
}
