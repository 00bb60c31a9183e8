package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/models"
)

func TestHFClient_GenerateText(t *testing.T) {
	var captured generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"generated_text": "the answer"}]`))
	}))
	defer server.Close()

	client := NewHFClient(server.URL, "test-key", arbor.NewLogger(), WithRateLimit(0))
	defer client.Close()

	text, err := client.GenerateText(context.Background(), "test-model", "the prompt", interfaces.GenerationParams{
		MaxNewTokens: 500,
		Temperature:  0.3,
	})
	require.NoError(t, err)
	assert.Equal(t, "the answer", text)
	assert.Equal(t, "the prompt", captured.Inputs)
	assert.Equal(t, 500, captured.Parameters.MaxNewTokens)
	assert.Equal(t, 0.3, captured.Parameters.Temperature)
	assert.False(t, captured.Parameters.ReturnFullText)
}

func TestHFClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	client := NewHFClient(server.URL, "", arbor.NewLogger(), WithRateLimit(0))
	defer client.Close()

	_, err := client.GenerateText(context.Background(), "test-model", "prompt", interfaces.GenerationParams{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, models.ErrorTagRateLimit, Classify(err).Tag)
}

func TestHFClient_Unreachable(t *testing.T) {
	// A server that is immediately closed leaves a connect-refused address
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHFClient(server.URL, "", arbor.NewLogger(), WithRateLimit(0))
	defer client.Close()

	_, err := client.GenerateText(context.Background(), "test-model", "prompt", interfaces.GenerationParams{})
	require.Error(t, err)
	assert.Equal(t, models.ErrorTagNetwork, Classify(err).Tag)
}

func TestHFClient_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewHFClient(server.URL, "", arbor.NewLogger(), WithRateLimit(0))
	defer client.Close()

	_, err := client.GenerateText(context.Background(), "test-model", "prompt", interfaces.GenerationParams{})
	assert.Error(t, err)
}
