package writing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
	"github.com/ideagarden/backend/internal/markdown"
)

// FeedbackInput holds parameters for the feedback operation.
type FeedbackInput struct {
	IdeaID         uuid.UUID
	Content        string
	PageKey        string
	SummaryContent string
}

// Validate validates the feedback input.
func (i FeedbackInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Content) == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if i.PageKey != "" && !domain.PageKey(i.PageKey).IsValid() {
		errs = append(errs, domain.FieldError{Field: "pageKey", Message: "unknown page"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Feedback analyzes the draft and returns verified highlights. The
// draft is flattened to plain text first so highlight anchors match
// what the editor renders; highlights whose matchText is not an exact
// substring of the flat text are discarded. The surviving batch is
// tagged with the page it was generated for, persisted as the
// workspace's current highlights, and returned for streaming.
func (s *Service) Feedback(ctx context.Context, input FeedbackInput) ([]domain.Highlight, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ideaCtx, err := s.ideaContext(ctx, input.IdeaID)
	if err != nil {
		return nil, fmt.Errorf("writing.Feedback: %w", err)
	}

	flatText := markdown.Strip(input.Content)
	samples := s.priorSamples(ctx, input.IdeaID)

	raw, err := s.assistant.WritingFeedback(ctx, flatText, ideaCtx, samples, input.SummaryContent)
	if err != nil {
		return nil, fmt.Errorf("writing.Feedback: %w", err)
	}

	pageKey := domain.PageKey(input.PageKey)
	if pageKey == "" {
		pageKey = domain.PageSummary
	}

	now := s.now()
	highlights := make([]domain.Highlight, 0, len(raw))
	for i, h := range raw {
		if !strings.Contains(flatText, h.MatchText) {
			continue
		}
		highlights = append(highlights, domain.Highlight{
			ID:            fmt.Sprintf("hl-%d-%d", now.UnixMilli(), i),
			Type:          domain.HighlightType(h.Type),
			MatchText:     h.MatchText,
			Comment:       h.Comment,
			SuggestedEdit: h.SuggestedEdit,
			PageKey:       pageKey,
		})
	}

	if err := s.workspaces.SetFeedback(ctx, input.IdeaID, highlights, now); err != nil {
		return nil, fmt.Errorf("writing.Feedback: %w", err)
	}

	s.log.InfoContext(ctx, "feedback generated",
		"idea_id", input.IdeaID.String(),
		"highlights", len(highlights),
		"discarded", len(raw)-len(highlights))

	return highlights, nil
}
