// Package idea implements idea lifecycle and plan generation.
package idea

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
)

// ideaRepo defines the idea repository interface needed by idea service.
type ideaRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.IdeaStatus) (*domain.Idea, error)
}

// planner defines the plan-generation interface needed by idea service.
type planner interface {
	GeneratePlan(ctx context.Context, idea domain.IdeaContext) (string, error)
}

// Service implements idea operations.
type Service struct {
	log     *slog.Logger
	ideas   ideaRepo
	planner planner
}

// NewService creates a new idea service instance.
func NewService(logger *slog.Logger, ideas ideaRepo, planner planner) *Service {
	return &Service{
		log:     logger.With("service", "idea"),
		ideas:   ideas,
		planner: planner,
	}
}
