package interfaces

import "context"

// GenerationParams are the parameters sent with a single text-generation call
type GenerationParams struct {
	// MaxNewTokens bounds the generated continuation length
	MaxNewTokens int

	// Temperature controls sampling randomness
	Temperature float64

	// ReturnFullText requests the prompt echoed back with the continuation.
	// The pipeline always sets this false.
	ReturnFullText bool
}

// Invoker runs a prompt against the configured model order and returns raw
// generated text, or a classified failure once every model has been tried
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Generator is the inference transport: one call against one model.
// Implementations return the raw generated text or an error describing the
// transport/HTTP failure. Retry and fallback across models live above this
// interface, in the invoker.
type Generator interface {
	// GenerateText runs a single generation request against the given model
	GenerateText(ctx context.Context, model, prompt string, params GenerationParams) (string, error)

	// Close releases transport resources
	Close() error
}
