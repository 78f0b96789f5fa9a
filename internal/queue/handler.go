package queue

import (
	"log/slog"
	"net/http"

	"github.com/lucasclyra-cmd/normative/pkg/handlers"
	"github.com/lucasclyra-cmd/normative/pkg/routes"
)

// Handler provides HTTP endpoints for the workflow queue projections.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "queue"),
	}
}

// Routes returns the route group definition for queue endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/queue",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/pending", Handler: h.Pending},
			{Method: "GET", Pattern: "/summary", Handler: h.Summary},
		},
	}
}

// Pending returns the pending queue with urgency buckets, oldest first.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	items, err := h.sys.Pending(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Summary returns aggregate queue counts for the dashboard.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sys.Summarize(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}
