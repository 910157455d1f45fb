// Package writing implements the idea writing workspace: pages,
// AI feedback, chat, and image uploads.
package writing

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/adapter/llm"
	writingrepo "github.com/ideagarden/backend/internal/adapter/postgres/writing"
	"github.com/ideagarden/backend/internal/domain"
)

// priorSampleCount bounds how many other workspaces are sampled for
// voice consistency in feedback and chat prompts.
const priorSampleCount = 3

// writingRepo defines the workspace repository interface needed by writing service.
type writingRepo interface {
	GetByIdeaID(ctx context.Context, ideaID uuid.UUID) (*domain.IdeaWriting, error)
	Create(ctx context.Context, w *domain.IdeaWriting) (*domain.IdeaWriting, error)
	Update(ctx context.Context, ideaID uuid.UUID, params writingrepo.UpdateParams) (*domain.IdeaWriting, error)
	SetFeedback(ctx context.Context, ideaID uuid.UUID, highlights []domain.Highlight, at time.Time) error
	PriorPages(ctx context.Context, excludeIdeaID uuid.UUID, limit int) ([]domain.Pages, error)
	ActiveIdeaIDs(ctx context.Context) ([]uuid.UUID, error)
}

// ideaRepo defines the idea repository interface needed by writing service.
type ideaRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error)
}

// conversationRepo defines the conversation repository interface needed
// by writing service.
type conversationRepo interface {
	GetByIdeaID(ctx context.Context, ideaID uuid.UUID) (*domain.WritingConversation, error)
	Upsert(ctx context.Context, ideaID uuid.UUID, messages []domain.ChatMessage) error
}

// assistant defines the language-model interface needed by writing service.
type assistant interface {
	WritingFeedback(ctx context.Context, flatText string, idea domain.IdeaContext, priorSamples []string, summary string) ([]llm.RawHighlight, error)
	StreamChat(ctx context.Context, messages []domain.ChatMessage, draft string, idea domain.IdeaContext, priorSamples []string, summary string, onDelta func(string)) (string, error)
}

// uploader defines the object-storage interface needed by writing service.
type uploader interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// Service implements writing workspace operations.
type Service struct {
	log           *slog.Logger
	workspaces    writingRepo
	ideas         ideaRepo
	conversations conversationRepo
	assistant     assistant
	uploader      uploader
	now           func() time.Time
}

// NewService creates a new writing service instance.
func NewService(
	logger *slog.Logger,
	workspaces writingRepo,
	ideas ideaRepo,
	conversations conversationRepo,
	assistant assistant,
	uploader uploader,
) *Service {
	return &Service{
		log:           logger.With("service", "writing"),
		workspaces:    workspaces,
		ideas:         ideas,
		conversations: conversations,
		assistant:     assistant,
		uploader:      uploader,
		now:           time.Now,
	}
}

// ideaContext loads the idea and shapes it for prompt building.
func (s *Service) ideaContext(ctx context.Context, ideaID uuid.UUID) (domain.IdeaContext, error) {
	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return domain.IdeaContext{}, err
	}
	return domain.IdeaContext{
		Title:         idea.Title,
		Description:   idea.Description,
		Category:      idea.Category,
		ActionItems:   idea.ActionItems,
		Tags:          idea.Tags,
		AISuggestions: idea.AISuggestions,
	}, nil
}

// priorSamples collects combined page text from up to priorSampleCount
// other workspaces, skipping blank ones.
func (s *Service) priorSamples(ctx context.Context, excludeIdeaID uuid.UUID) []string {
	pages, err := s.workspaces.PriorPages(ctx, excludeIdeaID, priorSampleCount)
	if err != nil {
		s.log.WarnContext(ctx, "prior samples unavailable", "error", err)
		return nil
	}

	var samples []string
	for _, p := range pages {
		if combined := p.Combined(); combined != "" {
			samples = append(samples, combined)
		}
	}
	return samples
}
