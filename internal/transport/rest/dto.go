package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ideagarden/backend/internal/domain"
)

// entryResponse mirrors the entries table plus preloaded ideas.
type entryResponse struct {
	ID               string         `json:"id"`
	DayNumber        int            `json:"day_number"`
	Date             string         `json:"date"`
	RawTranscription string         `json:"raw_transcription"`
	Title            string         `json:"title"`
	Summary          string         `json:"summary"`
	Mood             string         `json:"mood"`
	Tags             []string       `json:"tags"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Ideas            []ideaResponse `json:"ideas"`
}

type ideaResponse struct {
	ID            string    `json:"id"`
	EntryID       string    `json:"entry_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	Confidence    float64   `json:"confidence"`
	ActionItems   []string  `json:"action_items"`
	Tags          []string  `json:"tags"`
	AISuggestions []string  `json:"ai_suggestions"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type workspaceResponse struct {
	ID               string             `json:"id"`
	IdeaID           string             `json:"idea_id"`
	Pages            domain.Pages       `json:"pages"`
	ActivePage       string             `json:"active_page"`
	Highlights       []domain.Highlight `json:"highlights"`
	WordCount        int                `json:"word_count"`
	LastAIFeedbackAt *time.Time         `json:"last_ai_feedback_at"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func toEntryResponse(e *domain.Entry) entryResponse {
	ideas := make([]ideaResponse, 0, len(e.Ideas))
	for i := range e.Ideas {
		ideas = append(ideas, toIdeaResponse(&e.Ideas[i]))
	}
	return entryResponse{
		ID:               e.ID.String(),
		DayNumber:        e.DayNumber,
		Date:             e.Date.Format("2006-01-02"),
		RawTranscription: e.RawTranscription,
		Title:            e.Title,
		Summary:          e.Summary,
		Mood:             e.Mood.String(),
		Tags:             orEmpty(e.Tags),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		Ideas:            ideas,
	}
}

func toIdeaResponse(i *domain.Idea) ideaResponse {
	return ideaResponse{
		ID:            i.ID.String(),
		EntryID:       i.EntryID.String(),
		Title:         i.Title,
		Description:   i.Description,
		Category:      i.Category.String(),
		Status:        i.Status.String(),
		Confidence:    i.Confidence,
		ActionItems:   orEmpty(i.ActionItems),
		Tags:          orEmpty(i.Tags),
		AISuggestions: orEmpty(i.AISuggestions),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toWorkspaceResponse(w *domain.IdeaWriting) workspaceResponse {
	highlights := w.Highlights
	if highlights == nil {
		highlights = []domain.Highlight{}
	}
	return workspaceResponse{
		ID:               w.ID.String(),
		IdeaID:           w.IdeaID.String(),
		Pages:            w.Pages,
		ActivePage:       w.ActivePage.String(),
		Highlights:       highlights,
		WordCount:        w.WordCount,
		LastAIFeedbackAt: w.LastAIFeedbackAt,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// handleError maps domain errors to HTTP status codes.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrExtractionFailed):
		log.ErrorContext(r.Context(), "extraction failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "idea extraction failed")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
