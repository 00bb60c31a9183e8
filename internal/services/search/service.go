// Package search answers free-text questions against the full policy
// corpus. There is no pre-filtering or ranking: every policy's text is
// embedded into the prompt, bounded per document by the prompt builder.
package search

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/interfaces"
	"github.com/responsahq/responsa/internal/models"
	"github.com/responsahq/responsa/internal/services/answers"
	"github.com/responsahq/responsa/internal/services/llm"
	"github.com/responsahq/responsa/internal/services/prompt"
)

// NoPoliciesAnswer is the fixed response for an empty corpus. It is a
// deliberate non-error signal, returned with full confidence and without
// touching the inference transport.
const NoPoliciesAnswer = "There are no policies available to search yet."

// Service implements the SearchService interface
type Service struct {
	policyStorage      interfaces.PolicyStorage
	searchQueryStorage interfaces.SearchQueryStorage
	activityStorage    interfaces.ActivityStorage
	builder            *prompt.Builder
	invoker            interfaces.Invoker
	logger             arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.SearchService = (*Service)(nil)

// NewService creates a new search service
func NewService(
	policyStorage interfaces.PolicyStorage,
	searchQueryStorage interfaces.SearchQueryStorage,
	activityStorage interfaces.ActivityStorage,
	builder *prompt.Builder,
	invoker interfaces.Invoker,
	logger arbor.ILogger,
) *Service {
	return &Service{
		policyStorage:      policyStorage,
		searchQueryStorage: searchQueryStorage,
		activityStorage:    activityStorage,
		builder:            builder,
		invoker:            invoker,
		logger:             logger,
	}
}

// Search answers the query against the whole policy corpus. Every outcome -
// success, degraded parse, and classified inference error - is persisted as
// a search-query record plus an activity record, and returned as data
// rather than thrown.
func (s *Service) Search(ctx context.Context, query, userID string) (*models.AnswerResult, error) {
	policies, err := s.policyStorage.GetPolicies(ctx)
	if err != nil {
		// Storage failure is the one hard error this service propagates
		return nil, err
	}

	if len(policies) == 0 {
		result := models.AnswerResult{
			Answer:     NoPoliciesAnswer,
			Confidence: 1.0,
		}
		s.persistOutcome(ctx, query, userID, result)
		return &result, nil
	}

	sources := make([]prompt.Source, len(policies))
	for i, p := range policies {
		sources[i] = prompt.Source{
			ID:      p.ID,
			Title:   p.Title,
			Content: p.Content,
		}
	}

	raw, err := s.invoker.Invoke(ctx, s.builder.BuildSearch(query, sources))
	if err != nil {
		result := llm.ErrorResult(err)
		s.persistOutcome(ctx, query, userID, result)
		return &result, nil
	}

	result := answers.RecoverAnswer(raw)

	// Resolve the cited policy ID back to its title by linear lookup
	if result.PolicyID != 0 {
		for _, p := range policies {
			if p.ID == result.PolicyID {
				result.PolicyTitle = p.Title
				break
			}
		}
		if result.PolicyTitle == "" {
			s.logger.Warn().
				Int("policy_id", result.PolicyID).
				Msg("Model cited a policy ID not present in the corpus")
			result.PolicyID = 0
		}
	}

	s.persistOutcome(ctx, query, userID, result)

	s.logger.Info().
		Str("query", query).
		Int("policies", len(policies)).
		Int("policy_id", result.PolicyID).
		Msg("Policy search completed")

	return &result, nil
}

func (s *Service) persistOutcome(ctx context.Context, query, userID string, result models.AnswerResult) {
	record := &models.SearchQuery{
		Query:  query,
		UserID: userID,
		Result: result,
	}
	if err := s.searchQueryStorage.CreateSearchQuery(ctx, record); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist search query")
	}

	activity := &models.Activity{
		UserID:       userID,
		Action:       "policy_search",
		ResourceType: "search",
		ResourceID:   record.ID,
		Details:      query,
	}
	if err := s.activityStorage.CreateActivity(ctx, activity); err != nil {
		s.logger.Error().Err(err).Msg("Failed to record search activity")
	}
}
