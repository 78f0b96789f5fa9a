package workflow

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
	"github.com/lucasclyra-cmd/normative/pkg/handlers"
	"github.com/lucasclyra-cmd/normative/pkg/routes"
)

// Handler provides HTTP endpoints for workflow status and the audit trail.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// StatusResponse reports a version's current status and whether an external
// operation is still in flight.
type StatusResponse struct {
	VersionID  uuid.UUID `json:"version_id"`
	Status     Status    `json:"status"`
	Processing bool      `json:"processing"`
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "workflow"),
	}
}

// Routes returns the route group definition for workflow endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/workflow",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/versions/{id}/status", Handler: h.Status},
			{Method: "GET", Pattern: "/versions/{id}/watch", Handler: h.Watch},
			{Method: "GET", Pattern: "/versions/{id}/timeline", Handler: h.Timeline},
		},
	}
}

// Status returns the current status of a version.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	status, err := h.sys.Current(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusResponse{
		VersionID:  id,
		Status:     status,
		Processing: status.IsProcessing(),
	})
}

// Watch holds the request open until the version leaves the processing set,
// then returns the settled status. Client disconnect cancels the poll.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	status, err := h.sys.Watch(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusResponse{
		VersionID:  id,
		Status:     status,
		Processing: false,
	})
}

// Timeline returns the full activity trail for a version in occurrence order.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	entries, err := h.sys.Timeline(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}
