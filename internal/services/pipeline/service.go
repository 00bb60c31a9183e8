// Package pipeline drives uploaded documents through the
// pending -> processing -> processed | error lifecycle. Processing is
// detached: the upload call returns with the document still pending and
// callers poll for the terminal status.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/common"
	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/models"
	"github.com/responsahq/responsa/internal/services/answers"
	"github.com/responsahq/responsa/internal/services/extract"
	"github.com/responsahq/responsa/internal/services/llm"
	"github.com/responsahq/responsa/internal/services/prompt"
)

// processTimeout bounds one detached extraction + analysis run
const processTimeout = 5 * time.Minute

// storedErrorMessage is the generic message persisted on failed documents.
// Raw failure detail is logged only.
const storedErrorMessage = "The document could not be processed."

// Service implements the PipelineService interface
type Service struct {
	docStorage      interfaces.DocumentStorage
	activityStorage interfaces.ActivityStorage
	extractor       interfaces.Extractor
	builder         *prompt.Builder
	invoker         interfaces.Invoker
	uploadDir       string
	maxUploadBytes  int64
	logger          arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.PipelineService = (*Service)(nil)

// NewService creates a new pipeline service
func NewService(
	docStorage interfaces.DocumentStorage,
	activityStorage interfaces.ActivityStorage,
	extractor interfaces.Extractor,
	builder *prompt.Builder,
	invoker interfaces.Invoker,
	uploadConfig *common.UploadConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		docStorage:      docStorage,
		activityStorage: activityStorage,
		extractor:       extractor,
		builder:         builder,
		invoker:         invoker,
		uploadDir:       uploadConfig.Dir,
		maxUploadBytes:  int64(uploadConfig.MaxSizeMB) * 1024 * 1024,
		logger:          logger,
	}
}

// DetectFormat maps a filename extension to a document format
func DetectFormat(filename string) (models.DocumentFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return models.FormatPDF, nil
	case ".docx":
		return models.FormatDOCX, nil
	case ".txt":
		return models.FormatTXT, nil
	default:
		return "", extract.ErrUnsupportedFormat
	}
}

// UploadAndProcess stores the uploaded file, creates the document record in
// pending status, and launches detached processing. The returned document is
// still pending.
func (s *Service) UploadAndProcess(ctx context.Context, file io.Reader, req *interfaces.UploadRequest) (*models.Document, error) {
	format, err := DetectFormat(req.Filename)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	docID := common.NewDocumentID()
	storagePath := filepath.Join(s.uploadDir, docID+filepath.Ext(req.Filename))

	out, err := os.Create(storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	written, err := io.Copy(out, io.LimitReader(file, s.maxUploadBytes+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(storagePath)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if written > s.maxUploadBytes {
		os.Remove(storagePath)
		return nil, fmt.Errorf("upload exceeds maximum size of %d bytes", s.maxUploadBytes)
	}

	title := req.Title
	if title == "" {
		title = strings.TrimSuffix(req.Filename, filepath.Ext(req.Filename))
	}

	doc := &models.Document{
		ID:               docID,
		Title:            title,
		OriginalFilename: req.Filename,
		StoragePath:      storagePath,
		Format:           format,
		SizeBytes:        written,
		UserID:           req.UserID,
		Status:           models.DocumentStatusPending,
	}

	if err := s.docStorage.CreateDocument(ctx, doc); err != nil {
		os.Remove(storagePath)
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}

	s.logger.Info().
		Str("document_id", doc.ID).
		Str("format", string(format)).
		Int64("size_bytes", written).
		Msg("Document uploaded, launching processing")

	common.SafeGo(s.logger, "processDocument", func() {
		s.ProcessDocument(doc.ID, req.UserID)
	})

	return doc, nil
}

// ProcessDocument runs extraction and analysis for one document, driving it
// to a terminal status. It is safe to call from a detached goroutine and
// from the sweeper.
func (s *Service) ProcessDocument(docID, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	doc, err := s.docStorage.GetDocument(ctx, docID)
	if err != nil {
		s.logger.Error().Err(err).Str("document_id", docID).Msg("Failed to load document for processing")
		return
	}
	if doc.Status.IsTerminal() {
		return
	}

	s.setStatus(ctx, docID, models.DocumentStatusProcessing)

	text, err := s.extractor.Extract(ctx, doc.StoragePath, doc.Format)
	if err != nil {
		s.logger.Error().Err(err).Str("document_id", docID).Msg("Text extraction failed")
		s.failDocument(ctx, docID, userID)
		return
	}

	// The full extracted text is stored; the prompt below is bounded
	// separately by the builder's ceiling.
	s.docStorage.UpdateDocument(ctx, docID, &models.DocumentPatch{ExtractedText: &text})

	raw, err := s.invoker.Invoke(ctx, s.builder.BuildAnalysis(prompt.Source{
		Title:   doc.Title,
		Content: text,
	}))
	if err != nil {
		var classified *llm.ClassifiedError
		if errors.As(err, &classified) {
			s.logger.Error().
				Err(classified.Err).
				Str("tag", string(classified.Tag)).
				Str("document_id", docID).
				Msg("Document analysis failed")
		} else {
			s.logger.Error().Err(err).Str("document_id", docID).Msg("Document analysis failed")
		}
		s.failDocument(ctx, docID, userID)
		return
	}

	analysis := answers.RecoverAnalysis(raw)

	processed := models.DocumentStatusProcessed
	patch := &models.DocumentPatch{
		Status:    &processed,
		Summary:   &analysis.Summary,
		KeyPoints: analysis.KeyPoints,
	}
	if err := s.docStorage.UpdateDocument(ctx, docID, patch); err != nil {
		s.logger.Error().Err(err).Str("document_id", docID).Msg("Failed to persist processed document")
		return
	}

	s.recordActivity(ctx, userID, "document_processed", docID, "Document analysis completed")

	s.logger.Info().
		Str("document_id", docID).
		Int("key_points", len(analysis.KeyPoints)).
		Msg("Document processed")
}

// AskAboutDocument answers a question against one processed document
func (s *Service) AskAboutDocument(ctx context.Context, documentID, question, userID string) (*models.AnswerResult, error) {
	doc, err := s.docStorage.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.Status != models.DocumentStatusProcessed || doc.ExtractedText == "" {
		return &models.AnswerResult{
			Answer:     "This document has not finished processing yet. Please try again shortly.",
			Confidence: 1.0,
			DocumentID: doc.ID,
		}, nil
	}

	raw, err := s.invoker.Invoke(ctx, s.builder.BuildDocumentQuestion(question, prompt.Source{
		Title:   doc.Title,
		Content: doc.ExtractedText,
	}))
	if err != nil {
		result := llm.ErrorResult(err)
		result.DocumentID = doc.ID
		s.recordActivity(ctx, userID, "document_question", doc.ID, question)
		return &result, nil
	}

	result := answers.RecoverAnswer(raw)
	result.DocumentID = doc.ID

	s.recordActivity(ctx, userID, "document_question", doc.ID, question)

	return &result, nil
}

func (s *Service) setStatus(ctx context.Context, docID string, status models.DocumentStatus) {
	if err := s.docStorage.UpdateDocument(ctx, docID, &models.DocumentPatch{Status: &status}); err != nil {
		s.logger.Error().Err(err).Str("document_id", docID).Str("status", string(status)).Msg("Failed to persist status transition")
	}
}

func (s *Service) failDocument(ctx context.Context, docID, userID string) {
	errStatus := models.DocumentStatusError
	msg := storedErrorMessage
	patch := &models.DocumentPatch{
		Status:       &errStatus,
		ErrorMessage: &msg,
	}
	if err := s.docStorage.UpdateDocument(ctx, docID, patch); err != nil {
		s.logger.Error().Err(err).Str("document_id", docID).Msg("Failed to persist error status")
	}

	s.recordActivity(ctx, userID, "document_failed", docID, storedErrorMessage)
}

func (s *Service) recordActivity(ctx context.Context, userID, action, resourceID, details string) {
	activity := &models.Activity{
		UserID:       userID,
		Action:       action,
		ResourceType: "document",
		ResourceID:   resourceID,
		Details:      details,
	}
	if err := s.activityStorage.CreateActivity(ctx, activity); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("Failed to record activity")
	}
}
