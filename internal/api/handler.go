package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/image-forge/internal/conversion"
	"github.com/JaimeStill/image-forge/internal/history"
	"github.com/JaimeStill/image-forge/internal/selection"
	"github.com/JaimeStill/image-forge/pkg/handlers"
	"github.com/JaimeStill/image-forge/pkg/lifecycle"
	"github.com/JaimeStill/image-forge/pkg/routes"
)

// ConvertRequest is the body of POST /convert.
type ConvertRequest struct {
	Selection selection.Request            `json:"selection"`
	Options   conversion.ConversionOptions `json:"options"`
}

// FaviconRequest is the body of POST /favicons.
type FaviconRequest struct {
	Selection selection.Request         `json:"selection"`
	Options   conversion.FaviconOptions `json:"options"`
}

// ConversionHandler serves the conversion endpoints. Each request carries
// its own selection; nothing is retained between requests.
type ConversionHandler struct {
	sys     conversion.System
	logger  *slog.Logger
	maxBody int64
}

// NewConversionHandler creates a conversion HTTP handler.
func NewConversionHandler(sys conversion.System, logger *slog.Logger, maxBody int64) *ConversionHandler {
	return &ConversionHandler{
		sys:     sys,
		logger:  logger.With("handler", "conversion"),
		maxBody: maxBody,
	}
}

// Routes returns the route configuration for conversion endpoints.
func (h *ConversionHandler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "",
		Tags:        []string{"Conversion"},
		Description: "Batch image conversion",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/convert", Handler: h.Convert, OpenAPI: Spec.Convert},
			{Method: "POST", Pattern: "/favicons", Handler: h.Favicons, OpenAPI: Spec.Favicons},
			{Method: "GET", Pattern: "/formats", Handler: h.Formats, OpenAPI: Spec.Formats},
		},
	}
}

// Convert handles POST /convert - converts the selected files and returns the batch report.
func (h *ConversionHandler) Convert(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[ConvertRequest](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), err)
		return
	}

	files := selection.Resolve(req.Selection, h.sys.Classifier())
	report, err := h.sys.ConvertBatch(r.Context(), files, req.Options)
	if err != nil {
		handlers.RespondError(w, h.logger, conversion.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// Favicons handles POST /favicons - generates favicon sets for the selected files.
func (h *ConversionHandler) Favicons(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[FaviconRequest](w, r, h.maxBody)
	if err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), err)
		return
	}

	if len(req.Options.Sizes) == 0 {
		req.Options.Sizes = conversion.DefaultFaviconSizes
	}

	files := selection.Resolve(req.Selection, h.sys.Classifier())
	report, err := h.sys.FaviconBatch(r.Context(), files, req.Options)
	if err != nil {
		handlers.RespondError(w, h.logger, conversion.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// Formats handles GET /formats - lists accepted inputs and producible outputs.
func (h *ConversionHandler) Formats(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Formats())
}

// ErrHistoryDisabled is returned by history endpoints when no database is configured.
var ErrHistoryDisabled = errors.New("batch history is disabled: no database configured")

func historyDisabled(logger *slog.Logger) routes.Group {
	unavailable := func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondError(w, logger, http.StatusServiceUnavailable, ErrHistoryDisabled)
	}
	return routes.Group{
		Prefix:      "/batches",
		Tags:        []string{"History"},
		Description: "Recorded batch reports (disabled)",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: unavailable, OpenAPI: history.Spec.List},
			{Method: "GET", Pattern: "/{id}", Handler: unavailable, OpenAPI: history.Spec.Find},
		},
	}
}

func health(lc *lifecycle.Coordinator) routes.Group {
	return routes.Group{
		Description: "Liveness and readiness probes",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/healthz", Handler: func(w http.ResponseWriter, r *http.Request) {
				handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			}},
			{Method: "GET", Pattern: "/readyz", Handler: func(w http.ResponseWriter, r *http.Request) {
				if !lc.Ready() {
					handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
					return
				}
				handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
			}},
		},
	}
}
