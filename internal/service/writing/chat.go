package writing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ideagarden/backend/internal/domain"
)

// ChatInput holds parameters for the chat operation.
type ChatInput struct {
	IdeaID         uuid.UUID
	Message        string
	CurrentContent string
	SummaryContent string
}

// Validate validates the chat input.
func (i ChatInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Message) == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Chat appends the user message to the idea's conversation, streams the
// assistant reply through onDelta, and persists the extended history.
// The full assistant reply is returned. When persistence fails after a
// successful stream the reply is still returned with the error so the
// caller can finish the stream before reporting it.
func (s *Service) Chat(ctx context.Context, input ChatInput, onDelta func(string)) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	ideaCtx, err := s.ideaContext(ctx, input.IdeaID)
	if err != nil {
		return "", fmt.Errorf("writing.Chat: %w", err)
	}

	history, err := s.Conversation(ctx, input.IdeaID)
	if err != nil {
		return "", fmt.Errorf("writing.Chat: %w", err)
	}

	history = append(history, domain.ChatMessage{
		Role:      domain.RoleUser,
		Content:   input.Message,
		Timestamp: s.now(),
	})

	samples := s.priorSamples(ctx, input.IdeaID)

	reply, err := s.assistant.StreamChat(ctx, history, input.CurrentContent, ideaCtx, samples, input.SummaryContent, onDelta)
	if err != nil {
		return "", fmt.Errorf("writing.Chat: %w", err)
	}

	history = append(history, domain.ChatMessage{
		Role:      domain.RoleAssistant,
		Content:   reply,
		Timestamp: s.now(),
	})

	if err := s.conversations.Upsert(ctx, input.IdeaID, history); err != nil {
		return reply, fmt.Errorf("writing.Chat: persist conversation: %w", err)
	}

	s.log.InfoContext(ctx, "chat turn completed",
		"idea_id", input.IdeaID.String(),
		"messages", len(history))

	return reply, nil
}
