package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
	"github.com/ideagarden/backend/internal/service/writing"
)

// maxUploadBytes bounds multipart image uploads.
const maxUploadBytes = 10 << 20

// writingService defines the minimal interface needed by WritingHandler.
type writingService interface {
	GetWorkspace(ctx context.Context, ideaID uuid.UUID) (*domain.IdeaWriting, error)
	UpdateWorkspace(ctx context.Context, ideaID uuid.UUID, input writing.UpdateWorkspaceInput) (*domain.IdeaWriting, error)
	ActiveIdeaIDs(ctx context.Context) ([]uuid.UUID, error)
	Feedback(ctx context.Context, input writing.FeedbackInput) ([]domain.Highlight, error)
	Conversation(ctx context.Context, ideaID uuid.UUID) ([]domain.ChatMessage, error)
	Chat(ctx context.Context, input writing.ChatInput, onDelta func(string)) (string, error)
	UploadImage(ctx context.Context, input writing.UploadInput) (string, error)
}

// WritingHandler serves writing workspace REST endpoints.
type WritingHandler struct {
	svc writingService
	log *slog.Logger
}

// NewWritingHandler creates a WritingHandler.
func NewWritingHandler(svc writingService, logger *slog.Logger) *WritingHandler {
	return &WritingHandler{svc: svc, log: logger.With("handler", "writing")}
}

type updateWorkspaceRequest struct {
	Pages      *domain.Pages       `json:"pages"`
	ActivePage *string             `json:"active_page"`
	WordCount  *int                `json:"word_count"`
	Highlights *[]domain.Highlight `json:"highlights"`
}

type feedbackRequest struct {
	Content        string `json:"content"`
	PageKey        string `json:"pageKey"`
	SummaryContent string `json:"summaryContent"`
}

type chatRequest struct {
	Message        string `json:"message"`
	CurrentContent string `json:"currentContent"`
	SummaryContent string `json:"summaryContent"`
}

type highlightEvent struct {
	Type      string           `json:"type"`
	Highlight domain.Highlight `json:"highlight"`
}

type textEvent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// GetWorkspace handles GET /api/writing/{ideaId}.
func (h *WritingHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "ideaId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	ws, err := h.svc.GetWorkspace(r.Context(), ideaID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkspaceResponse(ws))
}

// UpdateWorkspace handles PUT /api/writing/{ideaId}.
func (h *WritingHandler) UpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "ideaId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	var req updateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.svc.UpdateWorkspace(r.Context(), ideaID, writing.UpdateWorkspaceInput{
		Pages:      req.Pages,
		ActivePage: req.ActivePage,
		WordCount:  req.WordCount,
		Highlights: req.Highlights,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWorkspaceResponse(ws))
}

// Active handles GET /api/writing/active.
func (h *WritingHandler) Active(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.ActiveIdeaIDs(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": out})
}

// Feedback handles POST /api/writing/{ideaId}/feedback. The service
// call completes before the stream opens, so validation, lookup, and
// model failures all surface as plain HTTP statuses; highlights are
// then streamed one per SSE event.
func (h *WritingHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "ideaId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := writing.FeedbackInput{
		IdeaID:         ideaID,
		Content:        req.Content,
		PageKey:        req.PageKey,
		SummaryContent: req.SummaryContent,
	}
	if err := input.Validate(); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	highlights, err := h.svc.Feedback(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	stream, err := newSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	for _, hl := range highlights {
		if err := stream.Send(highlightEvent{Type: "highlight", Highlight: hl}); err != nil {
			return
		}
	}
	stream.Done()
}

// Conversation handles GET /api/writing/{ideaId}/chat.
func (h *WritingHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "ideaId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	messages, err := h.svc.Conversation(r.Context(), ideaID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.ChatMessage{"messages": messages})
}

// Chat handles POST /api/writing/{ideaId}/chat. The assistant reply is
// streamed as SSE text deltas while the full conversation is persisted
// at the end. The stream opens on the first delta: failures before any
// output surface as plain HTTP statuses, failures after it become an
// error event since headers are already committed.
func (h *WritingHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "ideaId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := writing.ChatInput{
		IdeaID:         ideaID,
		Message:        req.Message,
		CurrentContent: req.CurrentContent,
		SummaryContent: req.SummaryContent,
	}
	if err := input.Validate(); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var stream *sseWriter
	_, err = h.svc.Chat(r.Context(), input, func(text string) {
		if stream == nil {
			s, err := newSSEWriter(w)
			if err != nil {
				return
			}
			stream = s
		}
		stream.Send(textEvent{Type: "text", Text: text}) //nolint:errcheck
	})
	if err != nil {
		if stream == nil {
			handleError(w, r, h.log, err)
			return
		}
		h.log.ErrorContext(r.Context(), "chat failed", slog.String("error", err.Error()))
		stream.SendError("chat failed") //nolint:errcheck
		return
	}

	if stream == nil {
		s, err := newSSEWriter(w)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}
		stream = s
	}
	stream.Done()
}

// Upload handles POST /api/writing/{ideaId}/upload (multipart form,
// field "file").
func (h *WritingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "ideaId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	url, err := h.svc.UploadImage(r.Context(), writing.UploadInput{
		IdeaID:      ideaID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
