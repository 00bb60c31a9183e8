package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/services/extract"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing
const maxMultipartMemory = 10 << 20 // 10 MB

type DocumentHandler struct {
	pipeline        interfaces.PipelineService
	documentStorage interfaces.DocumentStorage
	logger          arbor.ILogger
}

func NewDocumentHandler(pipeline interfaces.PipelineService, documentStorage interfaces.DocumentStorage, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		pipeline:        pipeline,
		documentStorage: documentStorage,
		logger:          logger,
	}
}

// UploadHandler accepts a multipart upload and starts detached processing.
// The response carries the document in pending status; clients poll the get
// endpoint to observe the terminal status.
func (h *DocumentHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	req := &interfaces.UploadRequest{
		Title:    r.FormValue("title"),
		Filename: header.Filename,
		UserID:   userID(r),
		Size:     header.Size,
	}

	doc, err := h.pipeline.UploadAndProcess(r.Context(), file, req)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			WriteError(w, http.StatusBadRequest, "Unsupported file format: use pdf, docx or txt")
			return
		}
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Upload failed")
		WriteError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	WriteJSON(w, http.StatusAccepted, doc)
}

// ListHandler returns a paginated list of documents
func (h *DocumentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(query.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	docs, err := h.documentStorage.ListDocuments(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list documents")
		WriteError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetHandler returns one document by ID, including its current lifecycle
// status and, once processed, the summary and key points
func (h *DocumentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Invalid document ID")
		return
	}

	doc, err := h.documentStorage.GetDocument(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Document not found")
		return
	}

	WriteJSON(w, http.StatusOK, doc)
}
