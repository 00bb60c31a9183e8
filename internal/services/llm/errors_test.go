package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/responsahq/responsa/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected models.ErrorTag
	}{
		{
			name:     "url error is network",
			err:      &url.Error{Op: "Post", URL: "http://localhost:8080", Err: errors.New("dial tcp: connect: connection refused")},
			expected: models.ErrorTagNetwork,
		},
		{
			name:     "connection refused message",
			err:      errors.New("dial tcp 127.0.0.1:11434: connect: connection refused"),
			expected: models.ErrorTagNetwork,
		},
		{
			name:     "deadline exceeded",
			err:      fmt.Errorf("request failed: %w", context.DeadlineExceeded),
			expected: models.ErrorTagNetwork,
		},
		{
			name:     "http 429",
			err:      &APIError{StatusCode: 429, Body: "too many requests"},
			expected: models.ErrorTagRateLimit,
		},
		{
			name:     "quota message",
			err:      errors.New("quota exceeded for this project"),
			expected: models.ErrorTagRateLimit,
		},
		{
			name:     "http 401",
			err:      &APIError{StatusCode: 401, Body: "invalid token"},
			expected: models.ErrorTagAuth,
		},
		{
			name:     "http 403",
			err:      &APIError{StatusCode: 403, Body: "forbidden"},
			expected: models.ErrorTagAuth,
		},
		{
			name:     "api key message",
			err:      errors.New("invalid api key provided"),
			expected: models.ErrorTagAuth,
		},
		{
			name:     "model unavailable",
			err:      errors.New("model mistralai/Mistral-7B is currently loading"),
			expected: models.ErrorTagModel,
		},
		{
			name:     "unrecognized",
			err:      errors.New("something odd happened"),
			expected: models.ErrorTagUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify(tt.err)
			assert.Equal(t, tt.expected, classified.Tag)
			assert.Equal(t, SafeMessage(tt.expected), classified.Message)
			assert.ErrorIs(t, classified, tt.err)
		})
	}
}

func TestClassify_WrappedAPIError(t *testing.T) {
	err := fmt.Errorf("generation failed: %w", &APIError{StatusCode: 429, Body: "slow down"})
	classified := Classify(err)
	assert.Equal(t, models.ErrorTagRateLimit, classified.Tag)
}

func TestSafeMessage_NeverLeaksDetail(t *testing.T) {
	raw := errors.New("dial tcp 10.0.0.5:443: connect: connection refused")
	classified := Classify(raw)

	assert.NotContains(t, classified.Message, "10.0.0.5")
	assert.NotContains(t, classified.Message, "dial tcp")
}

func TestErrorResult(t *testing.T) {
	classified := Classify(&APIError{StatusCode: 429, Body: "busy"})
	result := ErrorResult(classified)

	assert.Equal(t, models.ErrorTagRateLimit, result.Error)
	assert.Equal(t, SafeMessage(models.ErrorTagRateLimit), result.Answer)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestErrorResult_UnclassifiedError(t *testing.T) {
	result := ErrorResult(errors.New("raw failure"))

	assert.Equal(t, models.ErrorTagUnknown, result.Error)
	assert.Equal(t, SafeMessage(models.ErrorTagUnknown), result.Answer)
	assert.NotContains(t, result.Answer, "raw failure")
}
