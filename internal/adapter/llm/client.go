// Package llm wraps the Anthropic API behind the typed calls the
// services need: structured idea extraction, writing feedback, plan
// generation, and streaming chat.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ideagarden/backend/internal/config"
	"github.com/ideagarden/backend/internal/domain"
)

// Client issues language-model calls. Every call is single-attempt and
// bounded by the configured timeout.
type Client struct {
	api anthropic.Client
	cfg config.AnthropicConfig
}

// New creates a Client from config.
func New(cfg config.AnthropicConfig) *Client {
	return &Client{
		api: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg: cfg,
	}
}

// callTool sends a message with a single forced tool and decodes the
// tool_use input into out. Returns domain.ErrExtractionFailed when the
// response carries no structured payload.
func (c *Client) callTool(ctx context.Context, model string, maxTokens int64, system string, user string, tool anthropic.ToolParam, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Tools:     []anthropic.ToolUnionParam{{OfTool: &tool}},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: tool.Name},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return fmt.Errorf("llm api call: %w", err)
	}

	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			if err := json.Unmarshal([]byte(variant.JSON.Input.Raw()), out); err != nil {
				return fmt.Errorf("decode tool input: %w", err)
			}
			return nil
		}
	}

	return fmt.Errorf("no tool response: %w", domain.ErrExtractionFailed)
}
