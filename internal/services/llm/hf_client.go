// Package llm provides the inference transport and the model invocation
// layer that drives it: one attempt per configured model, in order, with
// failures classified into a small taxonomy.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/responsahq/responsa/internal/interfaces"
)

const (
	// DefaultTimeout is the default HTTP timeout for generation calls
	DefaultTimeout = 60 * time.Second
)

// HFClient is a Generator backed by a hosted text-generation inference
// endpoint (Hugging Face Inference API wire format).
type HFClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// Compile-time interface assertion
var _ interfaces.Generator = (*HFClient)(nil)

// HFClientOption configures the HFClient
type HFClientOption func(*HFClient)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) HFClientOption {
	return func(c *HFClient) {
		c.httpClient = httpClient
	}
}

// WithRateLimit sets the request rate limit in requests per second.
// Zero disables rate limiting.
func WithRateLimit(perSecond float64) HFClientOption {
	return func(c *HFClient) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			c.limiter = nil
		}
	}
}

// NewHFClient creates a Generator calling the inference endpoint at baseURL
func NewHFClient(baseURL, apiKey string, logger arbor.ILogger, opts ...HFClientOption) *HFClient {
	c := &HFClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateText runs a single generation request against the given model
func (c *HFClient) GenerateText(ctx context.Context, model, prompt string, params interfaces.GenerationParams) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	body, err := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens:   params.MaxNewTokens,
			Temperature:    params.Temperature,
			ReturnFullText: params.ReturnFullText,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s", c.baseURL, url.PathEscape(model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	// The API returns a single-element array of generations
	var generations []generateResponse
	if err := json.Unmarshal(respBody, &generations); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}
	if len(generations) == 0 {
		return "", fmt.Errorf("generation response contained no candidates")
	}

	c.logger.Debug().
		Str("model", model).
		Int("prompt_chars", len(prompt)).
		Dur("duration", time.Since(start)).
		Msg("Generation call completed")

	return generations[0].GeneratedText, nil
}

// Close releases transport resources
func (c *HFClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
