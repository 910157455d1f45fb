// Package journal implements entry submission, browsing, and merging.
package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/adapter/postgres/entry"
	"github.com/ideagarden/backend/internal/domain"
)

// entryRepo defines the entry repository interface needed by journal service.
type entryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	List(ctx context.Context, filter entry.Filter) ([]*domain.Entry, error)
	MaxDayNumber(ctx context.Context) (int, error)
	Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	UpdateMerged(ctx context.Context, id uuid.UUID, rawTranscription, summary string, tags []string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ideaRepo defines the idea repository interface needed by journal service.
type ideaRepo interface {
	ListByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]*domain.Idea, error)
	CreateBatch(ctx context.Context, ideas []*domain.Idea) ([]*domain.Idea, error)
	ReassignEntry(ctx context.Context, fromEntry, toEntry uuid.UUID) (int, error)
}

// extractor defines the idea-extraction interface needed by journal service.
type extractor interface {
	ExtractIdeas(ctx context.Context, transcription string) (*domain.ExtractionResult, error)
}

// txManager defines the transaction manager interface needed by journal service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements journal entry operations.
type Service struct {
	log       *slog.Logger
	entries   entryRepo
	ideas     ideaRepo
	extractor extractor
	tx        txManager
	now       func() time.Time
}

// NewService creates a new journal service instance.
func NewService(
	logger *slog.Logger,
	entries entryRepo,
	ideas ideaRepo,
	extractor extractor,
	tx txManager,
) *Service {
	return &Service{
		log:       logger.With("service", "journal"),
		entries:   entries,
		ideas:     ideas,
		extractor: extractor,
		tx:        tx,
		now:       time.Now,
	}
}
