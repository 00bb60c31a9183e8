package models

import "time"

// DocumentStatus tracks a document through the ingestion pipeline
type DocumentStatus string

const (
	// DocumentStatusPending - uploaded, waiting for processing
	DocumentStatusPending DocumentStatus = "pending"
	// DocumentStatusProcessing - extraction and analysis in progress
	DocumentStatusProcessing DocumentStatus = "processing"
	// DocumentStatusProcessed - analysis succeeded, summary available
	DocumentStatusProcessed DocumentStatus = "processed"
	// DocumentStatusError - extraction or analysis failed
	DocumentStatusError DocumentStatus = "error"
)

// IsTerminal reports whether no further automatic transition occurs from the status
func (s DocumentStatus) IsTerminal() bool {
	return s == DocumentStatusProcessed || s == DocumentStatusError
}

// DocumentFormat identifies the declared file format of an uploaded document
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
	FormatTXT  DocumentFormat = "txt"
)

// Document represents an uploaded policy document moving through the
// extraction and analysis pipeline. Summary and KeyPoints are set only
// once Status is processed.
type Document struct {
	ID               string         `json:"id" badgerhold:"key"`
	Title            string         `json:"title"`
	OriginalFilename string         `json:"original_filename"`
	StoragePath      string         `json:"storage_path"`
	Format           DocumentFormat `json:"format"`
	SizeBytes        int64          `json:"size_bytes"`
	UserID           string         `json:"user_id"`
	Status           DocumentStatus `json:"status"`
	ExtractedText    string         `json:"extracted_text,omitempty"`
	Summary          string         `json:"summary,omitempty"`
	KeyPoints        []string       `json:"key_points,omitempty"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// DocumentPatch carries a partial update applied by the pipeline.
// Nil fields are left unchanged.
type DocumentPatch struct {
	Status        *DocumentStatus
	ExtractedText *string
	Summary       *string
	KeyPoints     []string
	ErrorMessage  *string
}
