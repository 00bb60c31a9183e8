package common

import (
	"github.com/google/uuid"
)

// NewDocumentID generates a unique document ID with the "doc_" prefix
func NewDocumentID() string {
	return "doc_" + uuid.New().String()
}

// NewActivityID generates a unique activity ID with the "act_" prefix
func NewActivityID() string {
	return "act_" + uuid.New().String()
}

// NewSearchQueryID generates a unique search query ID with the "sq_" prefix
func NewSearchQueryID() string {
	return "sq_" + uuid.New().String()
}
