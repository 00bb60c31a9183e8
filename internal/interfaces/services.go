package interfaces

import (
	"context"
	"io"

	"github.com/responsahq/responsa/internal/models"
)

// Extractor converts a stored file into normalized UTF-8 text
type Extractor interface {
	Extract(ctx context.Context, path string, format models.DocumentFormat) (string, error)
}

// UploadRequest carries the metadata accompanying an uploaded file
type UploadRequest struct {
	Title    string
	Filename string
	UserID   string
	Size     int64
}

// PipelineService drives a document through the
// pending -> processing -> processed | error lifecycle
type PipelineService interface {
	// UploadAndProcess stores the file, creates the document in pending
	// status, and launches detached processing. The returned document is
	// still pending; callers poll to observe the terminal status.
	UploadAndProcess(ctx context.Context, file io.Reader, req *UploadRequest) (*models.Document, error)

	// AskAboutDocument answers a question against one processed document
	AskAboutDocument(ctx context.Context, documentID, question, userID string) (*models.AnswerResult, error)
}

// SearchService answers free-text questions against the policy corpus
type SearchService interface {
	Search(ctx context.Context, query, userID string) (*models.AnswerResult, error)
}
