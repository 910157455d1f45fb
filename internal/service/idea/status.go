package idea

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
)

// UpdateStatusInput holds parameters for the status update operation.
// Status is the only field an idea exposes for mutation.
type UpdateStatusInput struct {
	ID     uuid.UUID
	Status string
}

// Validate validates the update status input.
func (i UpdateStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Status == "" {
		errs = append(errs, domain.FieldError{Field: "status", Message: "required"})
	} else if !domain.IdeaStatus(i.Status).IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateStatus moves an idea to a new lifecycle status. Any transition
// between valid statuses is allowed.
func (s *Service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Idea, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.ideas.UpdateStatus(ctx, input.ID, domain.IdeaStatus(input.Status))
	if err != nil {
		return nil, fmt.Errorf("idea.UpdateStatus: %w", err)
	}

	s.log.InfoContext(ctx, "idea status updated",
		slog.String("idea_id", input.ID.String()),
		slog.String("status", input.Status))

	return updated, nil
}
