package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound - the file path does not exist at call time
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedFormat - the declared format is not pdf, docx or txt
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// ExtractionError wraps an underlying decode failure for a supported format
type ExtractionError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s text from %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
