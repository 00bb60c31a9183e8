package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/responsahq/responsa/internal/models"
	"github.com/responsahq/responsa/internal/services/llm"
	"github.com/responsahq/responsa/internal/services/prompt"
)

type fakePolicyStorage struct {
	policies []*models.Policy
	err      error
}

func (f *fakePolicyStorage) CreatePolicy(ctx context.Context, policy *models.Policy) error {
	f.policies = append(f.policies, policy)
	return nil
}

func (f *fakePolicyStorage) GetPolicy(ctx context.Context, id int) (*models.Policy, error) {
	for _, p := range f.policies {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.New("policy not found")
}

func (f *fakePolicyStorage) GetPolicies(ctx context.Context) ([]*models.Policy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.policies, nil
}

func (f *fakePolicyStorage) CountPolicies(ctx context.Context) (int, error) {
	return len(f.policies), nil
}

type fakeSearchQueryStorage struct {
	queries []*models.SearchQuery
}

func (f *fakeSearchQueryStorage) CreateSearchQuery(ctx context.Context, query *models.SearchQuery) error {
	f.queries = append(f.queries, query)
	return nil
}

func (f *fakeSearchQueryStorage) ListSearchQueries(ctx context.Context, limit int) ([]*models.SearchQuery, error) {
	return f.queries, nil
}

type fakeActivityStorage struct {
	activities []*models.Activity
}

func (f *fakeActivityStorage) CreateActivity(ctx context.Context, activity *models.Activity) error {
	f.activities = append(f.activities, activity)
	return nil
}

func (f *fakeActivityStorage) ListActivities(ctx context.Context, limit int) ([]*models.Activity, error) {
	return f.activities, nil
}

// fakeInvoker returns a canned response or error and counts invocations
type fakeInvoker struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeInvoker) Invoke(ctx context.Context, p string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, p)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestService(policies *fakePolicyStorage, invoker *fakeInvoker) (*Service, *fakeSearchQueryStorage, *fakeActivityStorage) {
	queries := &fakeSearchQueryStorage{}
	activities := &fakeActivityStorage{}
	svc := NewService(policies, queries, activities, prompt.NewBuilder(0), invoker, arbor.NewLogger())
	return svc, queries, activities
}

func TestSearch_EmptyCorpus(t *testing.T) {
	invoker := &fakeInvoker{}
	svc, queries, activities := newTestService(&fakePolicyStorage{}, invoker)

	result, err := svc.Search(context.Background(), "How many vacation days?", "user-1")
	require.NoError(t, err)

	assert.Equal(t, NoPoliciesAnswer, result.Answer)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Zero(t, invoker.calls, "empty corpus must not reach the inference transport")

	// Even the no-policy outcome is recorded
	require.Len(t, queries.queries, 1)
	assert.Equal(t, "How many vacation days?", queries.queries[0].Query)
	require.Len(t, activities.activities, 1)
	assert.Equal(t, "policy_search", activities.activities[0].Action)
}

func TestSearch_CitedPolicyResolved(t *testing.T) {
	policies := &fakePolicyStorage{policies: []*models.Policy{
		{ID: 2, Title: "Expense Policy", Content: "Claims within 30 days."},
		{ID: 5, Title: "Remote Work Policy", Content: "Two days remote per week."},
	}}
	invoker := &fakeInvoker{response: `{"answer": "Two remote days per week are allowed.", "confidence": 0.9, "policyId": 5}`}
	svc, queries, _ := newTestService(policies, invoker)

	result, err := svc.Search(context.Background(), "Can I work remotely?", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Two remote days per week are allowed.", result.Answer)
	assert.Equal(t, 0.9, result.Confidence)
	assert.Equal(t, 5, result.PolicyID)
	assert.Equal(t, "Remote Work Policy", result.PolicyTitle)

	require.Len(t, queries.queries, 1)
	assert.Equal(t, *result, queries.queries[0].Result)
}

func TestSearch_UnknownCitedPolicyCleared(t *testing.T) {
	policies := &fakePolicyStorage{policies: []*models.Policy{
		{ID: 1, Title: "Only Policy", Content: "text"},
	}}
	invoker := &fakeInvoker{response: `{"answer": "Yes.", "confidence": 0.8, "policyId": 99}`}
	svc, _, _ := newTestService(policies, invoker)

	result, err := svc.Search(context.Background(), "question", "user-1")
	require.NoError(t, err)

	assert.Zero(t, result.PolicyID)
	assert.Empty(t, result.PolicyTitle)
	assert.Equal(t, "Yes.", result.Answer)
}

func TestSearch_AllPoliciesInPrompt(t *testing.T) {
	policies := &fakePolicyStorage{policies: []*models.Policy{
		{ID: 1, Title: "Policy A", Content: "alpha content"},
		{ID: 2, Title: "Policy B", Content: "beta content"},
	}}
	invoker := &fakeInvoker{response: `{"answer": "ok", "confidence": 0.5}`}
	svc, _, _ := newTestService(policies, invoker)

	_, err := svc.Search(context.Background(), "question", "user-1")
	require.NoError(t, err)

	require.Len(t, invoker.prompts, 1)
	assert.Contains(t, invoker.prompts[0], "=== Policy 1: Policy A ===")
	assert.Contains(t, invoker.prompts[0], "=== Policy 2: Policy B ===")
	assert.Contains(t, invoker.prompts[0], "alpha content")
	assert.Contains(t, invoker.prompts[0], "beta content")
}

func TestSearch_InferenceFailureReturnedAsData(t *testing.T) {
	policies := &fakePolicyStorage{policies: []*models.Policy{
		{ID: 1, Title: "Policy A", Content: "text"},
	}}
	invoker := &fakeInvoker{err: llm.Classify(errors.New("dial tcp: connect: connection refused"))}
	svc, queries, activities := newTestService(policies, invoker)

	result, err := svc.Search(context.Background(), "question", "user-1")
	require.NoError(t, err, "inference failure is data, not an error")

	assert.Equal(t, models.ErrorTagNetwork, result.Error)
	assert.Equal(t, llm.SafeMessage(models.ErrorTagNetwork), result.Answer)
	assert.Equal(t, 0.0, result.Confidence)

	// Failed searches are persisted like successful ones
	require.Len(t, queries.queries, 1)
	assert.Equal(t, models.ErrorTagNetwork, queries.queries[0].Result.Error)
	assert.Len(t, activities.activities, 1)
}

func TestSearch_DegradedParse(t *testing.T) {
	policies := &fakePolicyStorage{policies: []*models.Policy{
		{ID: 1, Title: "Policy A", Content: "text"},
	}}
	invoker := &fakeInvoker{response: "The policy allows remote work on Mondays."}
	svc, _, _ := newTestService(policies, invoker)

	result, err := svc.Search(context.Background(), "question", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "The policy allows remote work on Mondays.", result.Answer)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Empty(t, result.Error)
}

func TestSearch_StorageFailurePropagates(t *testing.T) {
	policies := &fakePolicyStorage{err: errors.New("db closed")}
	invoker := &fakeInvoker{}
	svc, queries, _ := newTestService(policies, invoker)

	_, err := svc.Search(context.Background(), "question", "user-1")
	require.Error(t, err)
	assert.Zero(t, invoker.calls)
	assert.Empty(t, queries.queries)
}
