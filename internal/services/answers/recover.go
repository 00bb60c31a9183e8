// Package answers recovers structured results from free-form model output.
// Models are instructed to emit pure JSON but routinely wrap it in prose or
// markdown fences; recovery scans for the first balanced object span and
// degrades gracefully when none decodes. Nothing in this package returns an
// error for a malformed response - a bad model reply must never fail a
// request.
package answers

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/responsahq/responsa/internal/models"
)

const (
	// NotFoundAnswer is the sentinel used when a decoded response carries
	// no answer field.
	NotFoundAnswer = "No answer was found in the available documents."

	// DegradedSummary is the fixed summary used when analysis output could
	// not be decoded at all.
	DegradedSummary = "The document was processed but an automatic summary could not be generated."

	defaultConfidence = 0.5
)

var validate = validator.New()

// ExtractJSON returns the first balanced {...} span in raw, tracking brace
// depth character by character and skipping braces inside JSON strings.
// It returns "" when no balanced span exists.
func ExtractJSON(raw string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return raw[start : i+1]
				}
			}
		}
	}

	return ""
}

// rawAnswer mirrors the JSON shape the Q&A prompts request. Pointer fields
// distinguish absent from zero.
type rawAnswer struct {
	Answer     *string  `json:"answer"`
	Confidence *float64 `json:"confidence"`
	PolicyID   *int     `json:"policyId"`
}

// RecoverAnswer decodes a question-answering response. Missing fields get
// defaults (confidence 0.5, a fixed not-found answer). When no JSON span is
// found or decoding fails, the raw text becomes the answer with confidence 0.
func RecoverAnswer(raw string) models.AnswerResult {
	span := ExtractJSON(raw)
	if span == "" {
		return degradedAnswer(raw)
	}

	var decoded rawAnswer
	if err := json.Unmarshal([]byte(span), &decoded); err != nil {
		return degradedAnswer(raw)
	}

	result := models.AnswerResult{
		Answer:     NotFoundAnswer,
		Confidence: defaultConfidence,
	}
	if decoded.Answer != nil && *decoded.Answer != "" {
		result.Answer = *decoded.Answer
	}
	if decoded.Confidence != nil {
		result.Confidence = clampConfidence(*decoded.Confidence)
	}
	if decoded.PolicyID != nil {
		result.PolicyID = *decoded.PolicyID
	}

	return result
}

// rawAnalysis keeps keyPoints as raw JSON so a non-array value degrades to
// an empty list instead of failing the decode.
type rawAnalysis struct {
	Summary   *string         `json:"summary"`
	KeyPoints json.RawMessage `json:"keyPoints"`
}

// RecoverAnalysis decodes a document-analysis response into a summary and
// key points. Decode failure yields the fixed degraded summary with no key
// points rather than an error.
func RecoverAnalysis(raw string) models.AnalysisResult {
	span := ExtractJSON(raw)
	if span == "" {
		return degradedAnalysis()
	}

	var decoded rawAnalysis
	if err := json.Unmarshal([]byte(span), &decoded); err != nil {
		return degradedAnalysis()
	}

	result := models.AnalysisResult{
		Summary:   DegradedSummary,
		KeyPoints: []string{},
	}
	if decoded.Summary != nil && *decoded.Summary != "" {
		result.Summary = *decoded.Summary
	}
	if len(decoded.KeyPoints) > 0 {
		var points []string
		if err := json.Unmarshal(decoded.KeyPoints, &points); err == nil {
			result.KeyPoints = points
		}
	}

	if err := validate.Struct(&result); err != nil {
		return degradedAnalysis()
	}

	return result
}

func degradedAnswer(raw string) models.AnswerResult {
	return models.AnswerResult{
		Answer:     raw,
		Confidence: 0,
	}
}

func degradedAnalysis() models.AnalysisResult {
	return models.AnalysisResult{
		Summary:   DegradedSummary,
		KeyPoints: []string{},
	}
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
