package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/responsahq/responsa/internal/models"
)

// APIError is an HTTP-level failure surfaced by the inference transport
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inference API error: status %d: %s", e.StatusCode, e.Body)
}

// ClassifiedError is an inference failure mapped into the error taxonomy.
// Message is fixed and user-safe; the raw cause is logged, never returned
// to end users.
type ClassifiedError struct {
	Tag     models.ErrorTag
	Message string
	Err     error
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tag, e.Err)
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// Fixed user-safe messages, one per taxonomy tag
var safeMessages = map[models.ErrorTag]string{
	models.ErrorTagNetwork:   "The AI service could not be reached. Please try again shortly.",
	models.ErrorTagRateLimit: "The AI service is busy right now. Please try again in a moment.",
	models.ErrorTagAuth:      "The AI service rejected our credentials. Please contact an administrator.",
	models.ErrorTagModel:     "The configured AI model is currently unavailable.",
	models.ErrorTagUnknown:   "Something went wrong while generating an answer. Please try again.",
}

// SafeMessage returns the fixed user-facing message for a taxonomy tag
func SafeMessage(tag models.ErrorTag) string {
	return safeMessages[tag]
}

// ErrorResult converts an invocation failure into a renderable AnswerResult
// carrying the taxonomy tag and the fixed safe message, never raw detail
func ErrorResult(err error) models.AnswerResult {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return models.AnswerResult{
			Answer:     classified.Message,
			Confidence: 0,
			Error:      classified.Tag,
		}
	}
	return models.AnswerResult{
		Answer:     safeMessages[models.ErrorTagUnknown],
		Confidence: 0,
		Error:      models.ErrorTagUnknown,
	}
}

// Classify maps a transport error into the taxonomy. Signals, in priority
// order: connection-level failures, 429/quota, 401/403/key, model
// unavailable, then unknown.
func Classify(err error) *ClassifiedError {
	tag := classifyTag(err)
	return &ClassifiedError{
		Tag:     tag,
		Message: safeMessages[tag],
		Err:     err,
	}
}

func classifyTag(err error) models.ErrorTag {
	if err == nil {
		return models.ErrorTagUnknown
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) ||
		errors.Is(err, context.DeadlineExceeded) {
		return models.ErrorTagNetwork
	}

	msg := strings.ToLower(err.Error())

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429:
			return models.ErrorTagRateLimit
		case 401, 403:
			return models.ErrorTagAuth
		}
	}

	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "timeout"):
		return models.ErrorTagNetwork
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "rate_limit"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "resource_exhausted"):
		return models.ErrorTagRateLimit
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "forbidden"),
		strings.Contains(msg, "api key"),
		strings.Contains(msg, "api_key"),
		strings.Contains(msg, "authentication"):
		return models.ErrorTagAuth
	case strings.Contains(msg, "model"):
		return models.ErrorTagModel
	default:
		return models.ErrorTagUnknown
	}
}
