package review

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lucasclyra-cmd/normative/pkg/faults"
	"github.com/lucasclyra-cmd/normative/pkg/handlers"
	"github.com/lucasclyra-cmd/normative/pkg/identity"
	"github.com/lucasclyra-cmd/normative/pkg/routes"
)

// Handler provides HTTP endpoints for the text review cycle.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// SubmitRequest is the body for a correction pass.
type SubmitRequest struct {
	Text        string `json:"text"`
	SkipClarity bool   `json:"skip_clarity"`
}

// AcceptRequest is the body for closing the cycle. EditedText is optional;
// when present the author's manual text is recorded instead of the
// AI-corrected text.
type AcceptRequest struct {
	EditedText *string `json:"edited_text,omitempty"`
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "review"),
	}
}

// Routes returns the route group definition for review endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reviews",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/versions/{id}/submit", Handler: h.Submit},
			{Method: "POST", Pattern: "/versions/{id}/accept", Handler: h.Accept},
			{Method: "GET", Pattern: "/versions/{id}/latest", Handler: h.Latest},
			{Method: "GET", Pattern: "/versions/{id}/iterations", Handler: h.Iterations},
		},
	}
}

// Submit runs a correction pass over the posted text.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
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

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	tr, err := h.sys.Submit(r.Context(), SubmitCommand{
		VersionID:   id,
		Text:        req.Text,
		SkipClarity: req.SkipClarity,
	}, actor)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, tr)
}

// Accept closes the review cycle for a version.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
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

	var req AcceptRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
			return
		}
	}

	tr, err := h.sys.Accept(r.Context(), AcceptCommand{
		VersionID:  id,
		EditedText: req.EditedText,
	}, actor)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, tr)
}

// Latest returns the most recent iteration for a version.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	tr, err := h.sys.Latest(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tr)
}

// Iterations returns the full iteration history for a version in order.
func (h *Handler) Iterations(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	reviews, err := h.sys.Iterations(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, reviews)
}
