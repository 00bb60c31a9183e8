package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/responsahq/responsa/internal/interfaces"
)

// GeminiClient is a Generator backed by the Google Gemini API
type GeminiClient struct {
	client *genai.Client
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.Generator = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini-backed Generator
func NewGeminiClient(ctx context.Context, apiKey string, logger arbor.ILogger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		logger: logger,
	}, nil
}

// GenerateText runs a single generation request against the given model
func (c *GeminiClient) GenerateText(ctx context.Context, model, prompt string, params interfaces.GenerationParams) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(params.Temperature)),
		MaxOutputTokens: int32(params.MaxNewTokens),
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	var text strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			if text.Len() > 0 {
				break
			}
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("model %s returned no candidates", model)
	}

	c.logger.Debug().
		Str("model", model).
		Int("prompt_chars", len(prompt)).
		Msg("Gemini generation call completed")

	return text.String(), nil
}

// Close releases transport resources. The genai client holds no connection
// state requiring explicit shutdown.
func (c *GeminiClient) Close() error {
	c.client = nil
	return nil
}
