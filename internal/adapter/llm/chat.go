package llm

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/ideagarden/backend/internal/domain"
)

const draftExcerptLimit = 3000

// StreamChat streams an assistant reply for the conversation, calling
// onDelta with each text fragment as it arrives, and returns the full
// accumulated reply.
func (c *Client) StreamChat(ctx context.Context, messages []domain.ChatMessage, draft string, idea domain.IdeaContext, priorSamples []string, summary string, onDelta func(string)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.WritingModel),
		MaxTokens: c.cfg.ChatMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: chatSystemPrompt(draft, idea, priorSamples, summary)}},
		Messages:  toMessageParams(messages),
	}

	stream := c.api.Messages.NewStreaming(ctx, params)

	var full strings.Builder
	for stream.Next() {
		event := stream.Current()
		if deltaEvent, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
			if delta, ok := deltaEvent.Delta.AsAny().(anthropic.TextDelta); ok {
				full.WriteString(delta.Text)
				onDelta(delta.Text)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("chat stream: %w", err)
	}
	return full.String(), nil
}

func toMessageParams(messages []domain.ChatMessage) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == domain.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}

func chatSystemPrompt(draft string, idea domain.IdeaContext, priorSamples []string, summary string) string {
	parts := []string{
		"You are a helpful writing assistant. The user is developing an idea through writing.",
		"",
		"## Idea Context",
		fmt.Sprintf("Title: %s", idea.Title),
		fmt.Sprintf("Description: %s", idea.Description),
	}
	if len(idea.ActionItems) > 0 {
		parts = append(parts, fmt.Sprintf("Action Items: %s", strings.Join(idea.ActionItems, "; ")))
	}
	if len(idea.AISuggestions) > 0 {
		parts = append(parts, fmt.Sprintf("AI Suggestions: %s", strings.Join(idea.AISuggestions, "; ")))
	}

	if len(priorSamples) > 0 {
		parts = append(parts, "", "## Prior Writing Samples")
		for i, sample := range priorSamples {
			parts = append(parts, fmt.Sprintf("\nSample %d:\n%s", i+1, truncate(sample, priorSampleLimit)))
		}
	}

	if strings.TrimSpace(summary) != "" {
		parts = append(parts,
			"",
			"## Summary Notes (the writer's summary page — use as context)",
			truncate(summary, summaryExcerptLimit),
		)
	}

	if strings.TrimSpace(draft) != "" {
		parts = append(parts,
			"",
			"## Current Draft",
			truncate(draft, draftExcerptLimit),
		)
	}

	parts = append(parts,
		"",
		"## Instructions",
		"Help the writer develop their ideas. Be concise and practical.",
		"Reference specific parts of their draft when giving advice.",
		"Suggest concrete improvements rather than vague encouragement.",
	)
	return strings.Join(parts, "\n")
}
