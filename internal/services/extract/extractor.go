package extract

import (
	"context"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/models"
)

// Service extracts normalized UTF-8 text from uploaded files. Dispatch is
// purely on the declared format string, case-insensitive; the file content
// is never sniffed. Output is not post-processed here.
type Service struct {
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.Extractor = (*Service)(nil)

// NewService creates a new extractor service
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// Extract returns the text content of the file at path for the given format.
// It fails with ErrFileNotFound if the path does not exist, with
// ErrUnsupportedFormat for unknown format strings, and with an
// ExtractionError wrapping any decode failure.
func (s *Service) Extract(ctx context.Context, path string, format models.DocumentFormat) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", ErrFileNotFound
	}

	normalized := models.DocumentFormat(strings.ToLower(string(format)))

	s.logger.Debug().
		Str("path", path).
		Str("format", string(normalized)).
		Msg("Extracting document text")

	switch normalized {
	case models.FormatPDF:
		return s.extractPDF(path)
	case models.FormatDOCX:
		return s.extractDOCX(path)
	case models.FormatTXT:
		return s.extractTXT(path)
	default:
		return "", ErrUnsupportedFormat
	}
}

// extractPDF decodes the text layer of a binary PDF, page by page.
// Pages are separated with a form feed.
func (s *Service) extractPDF(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Path: path, Err: err}
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single undecodable page doesn't fail the document
			s.logger.Warn().Err(err).Str("path", path).Int("page", i).Msg("Skipping undecodable PDF page")
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}

	return buf.String(), nil
}

// extractDOCX reads the raw paragraph text out of a word-processing XML
// package. Headings and body paragraphs are treated alike.
func (s *Service) extractDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ExtractionError{Format: "docx", Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", &ExtractionError{Format: "docx", Path: path, Err: err}
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", &ExtractionError{Format: "docx", Path: path, Err: err}
	}

	var buf strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(text)
	}

	return buf.String(), nil
}

func (s *Service) extractTXT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Format: "txt", Path: path, Err: err}
	}
	return string(data), nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
