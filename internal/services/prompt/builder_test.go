package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Truncation(t *testing.T) {
	b := NewBuilder(100)

	long := strings.Repeat("a", 250)
	result := b.BuildSearch("question?", []Source{{ID: 1, Title: "Long Policy", Content: long}})

	assert.Contains(t, result, TruncationMarker)
	assert.Contains(t, result, strings.Repeat("a", 100)+TruncationMarker)
	assert.NotContains(t, result, strings.Repeat("a", 101))
}

func TestBuilder_NoTruncationAtCeiling(t *testing.T) {
	b := NewBuilder(100)

	exact := strings.Repeat("b", 100)
	result := b.BuildSearch("question?", []Source{{ID: 1, Title: "Exact", Content: exact}})

	assert.Contains(t, result, exact)
	assert.NotContains(t, result, TruncationMarker)
}

func TestBuilder_DefaultCeiling(t *testing.T) {
	b := NewBuilder(0)
	assert.Equal(t, DefaultContentCeiling, b.ceiling)

	b = NewBuilder(-5)
	assert.Equal(t, DefaultContentCeiling, b.ceiling)
}

func TestBuildSearch_PolicyHeaders(t *testing.T) {
	b := NewBuilder(DefaultContentCeiling)

	sources := []Source{
		{ID: 3, Title: "Vacation Policy", Content: "20 days per year."},
		{ID: 7, Title: "Remote Work Policy", Content: "Two days remote per week."},
	}
	result := b.BuildSearch("How many vacation days?", sources)

	assert.Contains(t, result, "=== Policy 3: Vacation Policy ===")
	assert.Contains(t, result, "=== Policy 7: Remote Work Policy ===")
	assert.Contains(t, result, "How many vacation days?")
	assert.Contains(t, result, "20 days per year.")
	assert.Contains(t, result, "Two days remote per week.")
	assert.Contains(t, result, `"policyId"`)
}

func TestBuildAnalysis(t *testing.T) {
	b := NewBuilder(DefaultContentCeiling)

	result := b.BuildAnalysis(Source{Title: "Expense Policy", Content: "Submit claims within 30 days."})

	assert.Contains(t, result, "=== Document 1: Expense Policy ===")
	assert.Contains(t, result, "Submit claims within 30 days.")
	assert.Contains(t, result, `"summary"`)
	assert.Contains(t, result, `"keyPoints"`)
}

func TestBuildDocumentQuestion_TruncatesLargeDocument(t *testing.T) {
	b := NewBuilder(DefaultContentCeiling)

	// A document well past the ceiling keeps its head in the prompt and
	// loses the tail.
	content := strings.Repeat("x", DefaultContentCeiling) + "TAIL-SENTINEL"
	result := b.BuildDocumentQuestion("What is the notice period?", Source{Title: "Big", Content: content})

	assert.Contains(t, result, TruncationMarker)
	assert.NotContains(t, result, "TAIL-SENTINEL")
	assert.Contains(t, result, "What is the notice period?")
}
