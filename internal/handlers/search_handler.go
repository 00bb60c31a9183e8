package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
)

type SearchHandler struct {
	searchService interfaces.SearchService
	pipeline      interfaces.PipelineService
	logger        arbor.ILogger
}

func NewSearchHandler(searchService interfaces.SearchService, pipeline interfaces.PipelineService, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		pipeline:      pipeline,
		logger:        logger,
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

// SearchHandler answers a free-text question against the policy corpus.
// Classified inference errors come back as a normal result with an error
// tag, not as an HTTP failure.
func (h *SearchHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, http.StatusBadRequest, "Query is required")
		return
	}

	result, err := h.searchService.Search(r.Context(), req.Query, userID(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("Search failed")
		WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

type askRequest struct {
	Question string `json:"question"`
}

// AskHandler answers a question against one document.
// Route shape: POST /api/documents/{id}/ask
func (h *SearchHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	docID := strings.TrimSuffix(path, "/ask")
	if docID == "" || docID == path {
		WriteError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		WriteError(w, http.StatusBadRequest, "Question is required")
		return
	}

	result, err := h.pipeline.AskAboutDocument(r.Context(), docID, req.Question, userID(r))
	if err != nil {
		WriteError(w, http.StatusNotFound, "Document not found")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
