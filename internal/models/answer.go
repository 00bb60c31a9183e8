package models

// ErrorTag classifies an inference failure into a small taxonomy. Tags are
// returned as data on AnswerResult so callers can render a friendly message
// instead of surfacing a 500.
type ErrorTag string

const (
	ErrorTagNetwork   ErrorTag = "network_error"
	ErrorTagRateLimit ErrorTag = "rate_limit"
	ErrorTagAuth      ErrorTag = "auth_error"
	ErrorTagModel     ErrorTag = "model_error"
	ErrorTagUnknown   ErrorTag = "unknown_error"
)

// AnswerResult is the externally visible contract of both policy search and
// per-document question answering. Confidence is always within [0,1],
// including degraded and error paths.
type AnswerResult struct {
	Answer      string   `json:"answer"`
	Confidence  float64  `json:"confidence"`
	PolicyID    int      `json:"policyId,omitempty"`
	PolicyTitle string   `json:"policyTitle,omitempty"`
	DocumentID  string   `json:"documentId,omitempty"`
	Error       ErrorTag `json:"error,omitempty"`
}

// AnalysisResult is the recovered shape of a document analysis response:
// a summary plus an ordered list of key-point strings.
type AnalysisResult struct {
	Summary   string   `json:"summary" validate:"required"`
	KeyPoints []string `json:"keyPoints"`
}
