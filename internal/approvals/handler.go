package approvals

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

// Handler provides HTTP endpoints for approval chain operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// CreateChainRequest is the body for chain creation.
type CreateChainRequest struct {
	VersionID   uuid.UUID      `json:"version_id"`
	ChainType   ChainType      `json:"chain_type"`
	Approvers   []ApproverSpec `json:"approvers"`
	UseDefaults bool           `json:"use_defaults"`
}

// RecordActionRequest is the body for recording one approver decision.
type RecordActionRequest struct {
	Action   Action  `json:"action"`
	Comments *string `json:"comments,omitempty"`
}

// SetTrainingRequest is the body for updating the training flag.
type SetTrainingRequest struct {
	Required bool `json:"required"`
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "approvals"),
	}
}

// Routes returns the route group definition for approval endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/approvals",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/chains", Handler: h.CreateChain},
			{Method: "GET", Pattern: "/chains/{id}", Handler: h.FindChain},
			{Method: "POST", Pattern: "/chains/{id}/entries/{entryId}/action", Handler: h.RecordAction},
			{Method: "PUT", Pattern: "/chains/{id}/training", Handler: h.SetTraining},
			{Method: "GET", Pattern: "/versions/{id}/active", Handler: h.ActiveForVersion},
			{Method: "GET", Pattern: "/versions/{id}/history", Handler: h.HistoryForVersion},
			{Method: "GET", Pattern: "/defaults", Handler: h.ListDefaults},
			{Method: "POST", Pattern: "/defaults", Handler: h.CreateDefault},
			{Method: "PUT", Pattern: "/defaults/{id}", Handler: h.UpdateDefault},
			{Method: "DELETE", Pattern: "/defaults/{id}", Handler: h.DeleteDefault},
		},
	}
}

// CreateChain creates a new approval chain for a document version.
func (h *Handler) CreateChain(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.ActorFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, fmt.Errorf("missing actor identity"))
		return
	}

	var req CreateChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	chain, err := h.sys.CreateChain(r.Context(), CreateChainCommand{
		VersionID:   req.VersionID,
		ChainType:   req.ChainType,
		Approvers:   req.Approvers,
		UseDefaults: req.UseDefaults,
	}, actor)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, chain)
}

// FindChain returns a chain with its entries and derived status.
func (h *Handler) FindChain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	chain, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, chain)
}

// RecordAction records one approver decision on a chain entry.
func (h *Handler) RecordAction(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.ActorFrom(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, fmt.Errorf("missing actor identity"))
		return
	}

	chainID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	entryID, err := uuid.Parse(r.PathValue("entryId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	var req RecordActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	chain, err := h.sys.RecordAction(r.Context(), RecordActionCommand{
		ChainID:  chainID,
		EntryID:  entryID,
		Action:   req.Action,
		Comments: req.Comments,
	}, actor)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, chain)
}

// SetTraining updates the training requirement flag on a pending chain.
func (h *Handler) SetTraining(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	var req SetTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	chain, err := h.sys.SetTraining(r.Context(), id, req.Required)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, chain)
}

// ActiveForVersion returns the pending chain for a version, or 404 when none.
func (h *Handler) ActiveForVersion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	chain, err := h.sys.ActiveForVersion(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if chain == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrChainNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, chain)
}

// HistoryForVersion returns every chain for a version, newest first.
func (h *Handler) HistoryForVersion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	chains, err := h.sys.HistoryForVersion(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, chains)
}

// ListDefaults returns approver templates, optionally scoped by document type.
func (h *Handler) ListDefaults(w http.ResponseWriter, r *http.Request) {
	var docType *string
	if dt := r.URL.Query().Get("document_type"); dt != "" {
		docType = &dt
	}

	defaults, err := h.sys.ListDefaults(r.Context(), docType)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, defaults)
}

// CreateDefault creates an approver template.
func (h *Handler) CreateDefault(w http.ResponseWriter, r *http.Request) {
	var cmd DefaultApproverCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	d, err := h.sys.CreateDefault(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, d)
}

// UpdateDefault updates an approver template.
func (h *Handler) UpdateDefault(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	var cmd DefaultApproverCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	d, err := h.sys.UpdateDefault(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}

// DeleteDefault removes an approver template.
func (h *Handler) DeleteDefault(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, faults.ErrValidation)
		return
	}

	if err := h.sys.DeleteDefault(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
