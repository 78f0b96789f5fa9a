package analysis

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/internal/workflow"
	"github.com/lucasclyra-cmd/normative/pkg/faults"
	"github.com/lucasclyra-cmd/normative/pkg/handlers"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/routes"
)

// Handler provides HTTP endpoints for analysis operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "analysis"),
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analysis",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/versions/{id}/request", Handler: h.Request},
			{Method: "GET", Pattern: "/versions/{id}/latest", Handler: h.Latest},
			{Method: "GET", Pattern: "/versions/{id}/history", Handler: h.History},
		},
	}
}

// Request triggers an analysis run and returns the transitional status.
// The run completes in the background; poll the workflow status to observe it.
func (h *Handler) Request(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.ActorFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, fmt.Errorf("missing actor identity"))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	status, err := h.sys.Request(r.Context(), id, actor)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, workflow.StatusResponse{
		VersionID:  id,
		Status:     status,
		Processing: status.IsProcessing(),
	})
}

// Latest returns the most recent analysis record for a version.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	a, err := h.sys.Latest(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// History returns every analysis record for a version, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	records, err := h.sys.History(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}
