package writing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	writingrepo "github.com/ideagarden/backend/internal/adapter/postgres/writing"
	"github.com/ideagarden/backend/internal/domain"
)

// GetWorkspace returns the idea's workspace, creating a blank one on
// first access. The idea must exist.
func (s *Service) GetWorkspace(ctx context.Context, ideaID uuid.UUID) (*domain.IdeaWriting, error) {
	if _, err := s.ideas.GetByID(ctx, ideaID); err != nil {
		return nil, fmt.Errorf("writing.GetWorkspace: %w", err)
	}

	w, err := s.workspaces.GetByIdeaID(ctx, ideaID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("writing.GetWorkspace: %w", err)
	}

	created, err := s.workspaces.Create(ctx, &domain.IdeaWriting{
		ID:         uuid.New(),
		IdeaID:     ideaID,
		Pages:      domain.Pages{},
		ActivePage: domain.PageSummary,
		Highlights: []domain.Highlight{},
	})
	if err != nil {
		// Lost a create race: the other request's row is the workspace.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.workspaces.GetByIdeaID(ctx, ideaID)
		}
		return nil, fmt.Errorf("writing.GetWorkspace: %w", err)
	}

	s.log.InfoContext(ctx, "workspace created", "idea_id", ideaID.String())
	return created, nil
}

// UpdateWorkspaceInput enumerates the updatable workspace fields.
// All fields are optional (nil = don't change), but at least one must
// be set.
type UpdateWorkspaceInput struct {
	Pages      *domain.Pages
	ActivePage *string
	WordCount  *int
	Highlights *[]domain.Highlight
}

// Validate validates the update workspace input.
func (i UpdateWorkspaceInput) Validate() error {
	var errs []domain.FieldError

	if i.Pages == nil && i.ActivePage == nil && i.WordCount == nil && i.Highlights == nil {
		errs = append(errs, domain.FieldError{Field: "body", Message: "no fields to update"})
	}
	if i.ActivePage != nil && !domain.PageKey(*i.ActivePage).IsValid() {
		errs = append(errs, domain.FieldError{Field: "active_page", Message: "unknown page"})
	}
	if i.WordCount != nil && *i.WordCount < 0 {
		errs = append(errs, domain.FieldError{Field: "word_count", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateWorkspace applies a partial update to the idea's workspace and
// returns the updated row.
func (s *Service) UpdateWorkspace(ctx context.Context, ideaID uuid.UUID, input UpdateWorkspaceInput) (*domain.IdeaWriting, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := writingrepo.UpdateParams{
		Pages:      input.Pages,
		WordCount:  input.WordCount,
		Highlights: input.Highlights,
	}
	if input.ActivePage != nil {
		key := domain.PageKey(*input.ActivePage)
		params.ActivePage = &key
	}

	updated, err := s.workspaces.Update(ctx, ideaID, params)
	if err != nil {
		return nil, fmt.Errorf("writing.UpdateWorkspace: %w", err)
	}
	return updated, nil
}

// ActiveIdeaIDs returns ids of ideas whose workspace has any non-blank
// page, for marking them in listings.
func (s *Service) ActiveIdeaIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := s.workspaces.ActiveIdeaIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("writing.ActiveIdeaIDs: %w", err)
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// Conversation returns the idea's chat history. A missing conversation
// is an empty history, not an error.
func (s *Service) Conversation(ctx context.Context, ideaID uuid.UUID) ([]domain.ChatMessage, error) {
	c, err := s.conversations.GetByIdeaID(ctx, ideaID)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("writing.Conversation: %w", err)
	}
	if c.Messages == nil {
		return []domain.ChatMessage{}, nil
	}
	return c.Messages, nil
}
