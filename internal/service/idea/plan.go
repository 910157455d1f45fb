package idea

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
)

// GeneratePlan produces a markdown action plan for the idea. The prompt
// depends on the idea's category: product and technical ideas get a
// build-prompt plan, everything else a general project plan.
func (s *Service) GeneratePlan(ctx context.Context, id uuid.UUID) (string, error) {
	idea, err := s.ideas.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("idea.GeneratePlan: %w", err)
	}

	plan, err := s.planner.GeneratePlan(ctx, domain.IdeaContext{
		Title:         idea.Title,
		Description:   idea.Description,
		Category:      idea.Category,
		ActionItems:   idea.ActionItems,
		Tags:          idea.Tags,
		AISuggestions: idea.AISuggestions,
	})
	if err != nil {
		return "", fmt.Errorf("idea.GeneratePlan: %w", err)
	}

	s.log.InfoContext(ctx, "plan generated", "idea_id", id.String())
	return plan, nil
}
