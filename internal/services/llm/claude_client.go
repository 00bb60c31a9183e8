package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
)

// ClaudeClient is a Generator backed by the Anthropic Claude API
type ClaudeClient struct {
	client anthropic.Client
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.Generator = (*ClaudeClient)(nil)

// NewClaudeClient creates a Claude-backed Generator
func NewClaudeClient(apiKey string, logger arbor.ILogger) *ClaudeClient {
	return &ClaudeClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		logger: logger,
	}
}

// GenerateText runs a single generation request against the given model
func (c *ClaudeClient) GenerateText(ctx context.Context, model, prompt string, params interfaces.GenerationParams) (string, error) {
	msgParams := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(params.MaxNewTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if params.Temperature > 0 {
		msgParams.Temperature = anthropic.Float(params.Temperature)
	}

	resp, err := c.client.Messages.New(ctx, msgParams)
	if err != nil {
		return "", fmt.Errorf("claude generation failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	c.logger.Debug().
		Str("model", model).
		Int("prompt_chars", len(prompt)).
		Msg("Claude generation call completed")

	return text.String(), nil
}

// Close releases transport resources
func (c *ClaudeClient) Close() error {
	return nil
}
