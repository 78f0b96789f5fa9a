package formatting

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

// Handler provides HTTP endpoints for formatting operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "formatting"),
	}
}

// Routes returns the route group definition for formatting endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/formatting",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/versions/{id}/request", Handler: h.Request},
			{Method: "POST", Pattern: "/versions/{id}/publish", Handler: h.Publish},
			{Method: "GET", Pattern: "/versions/{id}/latest", Handler: h.Latest},
		},
	}
}

// Request triggers a formatting run and returns the transitional status.
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

// Publish moves a formatted version to published.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
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

	status, err := h.sys.Publish(r.Context(), id, actor)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, workflow.StatusResponse{
		VersionID:  id,
		Status:     status,
		Processing: false,
	})
}

// Latest returns the most recent format record for a version.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	record, err := h.sys.Latest(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, record)
}
