package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
	"github.com/ideagarden/backend/internal/service/journal"
)

// journalService defines the minimal interface needed by JournalHandler.
type journalService interface {
	Submit(ctx context.Context, input journal.SubmitInput) (*domain.Entry, error)
	List(ctx context.Context, input journal.ListInput) ([]*domain.Entry, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Merge(ctx context.Context, input journal.MergeInput) (*journal.MergeResult, error)
}

// JournalHandler serves entry REST endpoints.
type JournalHandler struct {
	svc journalService
	log *slog.Logger
}

// NewJournalHandler creates a JournalHandler.
func NewJournalHandler(svc journalService, logger *slog.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, log: logger.With("handler", "journal")}
}

type submitRequest struct {
	Transcription string `json:"transcription"`
	Date          string `json:"date"`
}

type mergeRequest struct {
	TargetID string `json:"targetId"`
	SourceID string `json:"sourceId"`
}

type mergeResponse struct {
	Success    bool   `json:"success"`
	MergedInto string `json:"mergedInto"`
	MovedIdeas int    `json:"movedIdeas"`
}

// Submit handles POST /api/submit.
func (h *JournalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := journal.SubmitInput{Transcription: req.Transcription}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		input.Date = &date
	}

	entry, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// List handles GET /api/entries.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := journal.ListInput{
		Category: optionalQuery(q.Get("category")),
		Status:   optionalQuery(q.Get("status")),
		Tag:      optionalQuery(q.Get("tag")),
		Search:   optionalQuery(q.Get("search")),
	}

	entries, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/entries/{id}.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Delete handles DELETE /api/entries/{id}.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Merge handles POST /api/entries/merge.
func (h *JournalHandler) Merge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := journal.MergeInput{}
	if req.TargetID != "" {
		id, err := uuid.Parse(req.TargetID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid targetId")
			return
		}
		input.TargetID = id
	}
	if req.SourceID != "" {
		id, err := uuid.Parse(req.SourceID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid sourceId")
			return
		}
		input.SourceID = id
	}

	result, err := h.svc.Merge(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, mergeResponse{
		Success:    true,
		MergedInto: result.MergedInto,
		MovedIdeas: result.MovedIdeas,
	})
}

func optionalQuery(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
