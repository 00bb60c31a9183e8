package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
)

// Invoker drives the inference transport with an ordered list of model
// identifiers. Each model gets exactly one attempt; the first success wins
// and a failure moves straight to the next model with no backoff loop.
// A bounded semaphore caps concurrent in-flight calls so a burst of
// document uploads cannot starve the inference provider.
type Invoker struct {
	generator interfaces.Generator
	models    []string
	params    interfaces.GenerationParams
	sem       chan struct{}
	logger    arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.Invoker = (*Invoker)(nil)

// NewInvoker creates an invoker over the given transport. Models are tried
// in the order given; maxConcurrent bounds in-flight calls.
func NewInvoker(generator interfaces.Generator, models []string, params interfaces.GenerationParams, maxConcurrent int, logger arbor.ILogger) *Invoker {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Invoker{
		generator: generator,
		models:    models,
		params:    params,
		sem:       make(chan struct{}, maxConcurrent),
		logger:    logger,
	}
}

// Invoke runs the prompt against the configured models in order and returns
// the raw generated text. On failure of every model the error returned is a
// *ClassifiedError carrying the taxonomy tag and a fixed user-safe message
// for the last attempt; raw failure detail is logged here only.
func (inv *Invoker) Invoke(ctx context.Context, prompt string) (string, error) {
	if len(inv.models) == 0 {
		return "", fmt.Errorf("no models configured")
	}

	select {
	case inv.sem <- struct{}{}:
	case <-ctx.Done():
		return "", Classify(ctx.Err())
	}
	defer func() { <-inv.sem }()

	var lastErr error
	for i, model := range inv.models {
		text, err := inv.generator.GenerateText(ctx, model, prompt, inv.params)
		if err == nil {
			if i > 0 {
				inv.logger.Info().
					Str("model", model).
					Int("attempt", i+1).
					Msg("Fallback model succeeded")
			}
			return text, nil
		}

		lastErr = err
		inv.logger.Warn().
			Err(err).
			Str("model", model).
			Int("attempt", i+1).
			Int("models", len(inv.models)).
			Msg("Generation attempt failed")

		if ctx.Err() != nil {
			break
		}
	}

	classified := Classify(lastErr)
	inv.logger.Error().
		Err(lastErr).
		Str("tag", string(classified.Tag)).
		Msg("All generation attempts failed")

	return "", classified
}

// Models returns the configured model identifiers in attempt order
func (inv *Invoker) Models() []string {
	return inv.models
}
