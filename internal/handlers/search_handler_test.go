package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/models"
)

type fakeSearchService struct {
	result *models.AnswerResult
	err    error
	query  string
	userID string
}

func (f *fakeSearchService) Search(ctx context.Context, query, userID string) (*models.AnswerResult, error) {
	f.query = query
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakePipeline struct {
	result *models.AnswerResult
	err    error
	docID  string
}

func (f *fakePipeline) UploadAndProcess(ctx context.Context, file io.Reader, req *interfaces.UploadRequest) (*models.Document, error) {
	return nil, errors.New("not used")
}

func (f *fakePipeline) AskAboutDocument(ctx context.Context, documentID, question, userID string) (*models.AnswerResult, error) {
	f.docID = documentID
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestSearchHandler_OK(t *testing.T) {
	svc := &fakeSearchService{result: &models.AnswerResult{
		Answer:      "20 days per year.",
		Confidence:  0.9,
		PolicyID:    3,
		PolicyTitle: "Vacation Policy",
	}}
	h := NewSearchHandler(svc, &fakePipeline{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "How many vacation days?"}`))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()

	h.SearchHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "How many vacation days?", svc.query)
	assert.Equal(t, "user-1", svc.userID)

	var result models.AnswerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "20 days per year.", result.Answer)
	assert.Equal(t, 3, result.PolicyID)
	assert.Equal(t, "Vacation Policy", result.PolicyTitle)
}

func TestSearchHandler_ErrorTagReturnsOK(t *testing.T) {
	svc := &fakeSearchService{result: &models.AnswerResult{
		Answer:     "The AI service could not be reached. Please try again shortly.",
		Confidence: 0,
		Error:      models.ErrorTagNetwork,
	}}
	h := NewSearchHandler(svc, &fakePipeline{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "q"}`))
	rec := httptest.NewRecorder()

	h.SearchHandler(rec, req)

	// Inference failures are normal payloads, not HTTP failures
	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.AnswerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, models.ErrorTagNetwork, result.Error)
}

func TestSearchHandler_EmptyQuery(t *testing.T) {
	h := NewSearchHandler(&fakeSearchService{}, &fakePipeline{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "   "}`))
	rec := httptest.NewRecorder()

	h.SearchHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandler_MethodNotAllowed(t *testing.T) {
	h := NewSearchHandler(&fakeSearchService{}, &fakePipeline{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()

	h.SearchHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSearchHandler_StorageFailure(t *testing.T) {
	svc := &fakeSearchService{err: errors.New("db closed")}
	h := NewSearchHandler(svc, &fakePipeline{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query": "q"}`))
	rec := httptest.NewRecorder()

	h.SearchHandler(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAskHandler_OK(t *testing.T) {
	pipeline := &fakePipeline{result: &models.AnswerResult{
		Answer:     "Four weeks.",
		Confidence: 0.85,
		DocumentID: "doc_1",
	}}
	h := NewSearchHandler(&fakeSearchService{}, pipeline, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/doc_1/ask", strings.NewReader(`{"question": "Notice period?"}`))
	rec := httptest.NewRecorder()

	h.AskHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "doc_1", pipeline.docID)
}

func TestAskHandler_MissingDocumentID(t *testing.T) {
	h := NewSearchHandler(&fakeSearchService{}, &fakePipeline{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/documents//ask", strings.NewReader(`{"question": "q"}`))
	rec := httptest.NewRecorder()

	h.AskHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAskHandler_UnknownDocument(t *testing.T) {
	pipeline := &fakePipeline{err: errors.New("document not found")}
	h := NewSearchHandler(&fakeSearchService{}, pipeline, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/doc_none/ask", strings.NewReader(`{"question": "q"}`))
	rec := httptest.NewRecorder()

	h.AskHandler(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
