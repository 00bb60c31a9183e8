package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/common"
	"github.com/responsahq/responsa/internal/interfaces"
)

// NewGenerator constructs the configured inference transport. The generator
// is passed explicitly into the invoker; no package-global client is held.
func NewGenerator(ctx context.Context, config *common.LLMConfig, logger arbor.ILogger) (interfaces.Generator, error) {
	switch config.Provider {
	case "hf":
		return NewHFClient(config.Endpoint, config.APIKey, logger,
			WithRateLimit(config.RatePerSecond),
		), nil
	case "claude":
		return NewClaudeClient(config.APIKey, logger), nil
	case "gemini":
		return NewGeminiClient(ctx, config.APIKey, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", config.Provider)
	}
}
