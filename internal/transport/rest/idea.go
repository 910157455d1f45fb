package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
	"github.com/ideagarden/backend/internal/service/idea"
)

// ideaService defines the minimal interface needed by IdeaHandler.
type ideaService interface {
	UpdateStatus(ctx context.Context, input idea.UpdateStatusInput) (*domain.Idea, error)
	GeneratePlan(ctx context.Context, id uuid.UUID) (string, error)
}

// IdeaHandler serves idea REST endpoints.
type IdeaHandler struct {
	svc ideaService
	log *slog.Logger
}

// NewIdeaHandler creates an IdeaHandler.
func NewIdeaHandler(svc ideaService, logger *slog.Logger) *IdeaHandler {
	return &IdeaHandler{svc: svc, log: logger.With("handler", "idea")}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type planResponse struct {
	Plan string `json:"plan"`
}

// UpdateStatus handles PATCH /api/ideas/{id}.
func (h *IdeaHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), idea.UpdateStatusInput{
		ID:     id,
		Status: req.Status,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toIdeaResponse(updated))
}

// GeneratePlan handles POST /api/ideas/{id}/plan.
func (h *IdeaHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	plan, err := h.svc.GeneratePlan(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{Plan: plan})
}
