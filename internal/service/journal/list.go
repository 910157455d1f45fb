package journal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/adapter/postgres/entry"
	"github.com/ideagarden/backend/internal/domain"
)

// List returns entries matching the filter, newest day first, each with
// its ideas preloaded.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := entry.Filter{Tag: input.Tag, Search: input.Search}
	if input.Category != nil {
		c := domain.IdeaCategory(*input.Category)
		filter.Category = &c
	}
	if input.Status != nil {
		st := domain.IdeaStatus(*input.Status)
		filter.Status = &st
	}

	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("journal.List: %w", err)
	}

	if err := s.attachIdeas(ctx, entries); err != nil {
		return nil, fmt.Errorf("journal.List: %w", err)
	}
	return entries, nil
}

// Get returns one entry with its ideas preloaded.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("journal.Get: %w", err)
	}

	if err := s.attachIdeas(ctx, []*domain.Entry{e}); err != nil {
		return nil, fmt.Errorf("journal.Get: %w", err)
	}
	return e, nil
}

// Delete removes an entry and, via cascade, its ideas.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("journal.Delete: %w", err)
	}
	s.log.InfoContext(ctx, "entry deleted", "entry_id", id.String())
	return nil
}

// attachIdeas loads the ideas of all entries in one query and fans them
// out. Entries without ideas get an empty slice, not nil, so they
// serialize as [].
func (s *Service) attachIdeas(ctx context.Context, entries []*domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}

	ideas, err := s.ideas.ListByEntryIDs(ctx, ids)
	if err != nil {
		return err
	}

	byEntry := make(map[uuid.UUID][]domain.Idea, len(entries))
	for _, i := range ideas {
		byEntry[i.EntryID] = append(byEntry[i.EntryID], *i)
	}
	for _, e := range entries {
		if list, ok := byEntry[e.ID]; ok {
			e.Ideas = list
		} else {
			e.Ideas = []domain.Idea{}
		}
	}
	return nil
}
