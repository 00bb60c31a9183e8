package prompt

import (
	"fmt"
	"strings"
)

// DefaultContentCeiling is the per-document character ceiling applied when
// embedding document content into a prompt.
const DefaultContentCeiling = 15000

// TruncationMarker is appended to any document content trimmed at the ceiling
const TruncationMarker = "\n... [content truncated]"

// Source is one (title, content) pair embedded into a prompt. ID, when set,
// is the policy ID the model is asked to cite in its answer.
type Source struct {
	ID      int
	Title   string
	Content string
}

// Builder assembles bounded prompts from documents and an instruction
// template. Truncation is silent: documents longer than the ceiling lose
// trailing content.
type Builder struct {
	ceiling int
}

// NewBuilder creates a prompt builder with the given per-document character
// ceiling. A non-positive ceiling falls back to DefaultContentCeiling.
func NewBuilder(ceiling int) *Builder {
	if ceiling <= 0 {
		ceiling = DefaultContentCeiling
	}
	return &Builder{ceiling: ceiling}
}

// BuildSearch builds the whole-corpus question answering prompt
func (b *Builder) BuildSearch(question string, sources []Source) string {
	return fmt.Sprintf(qaInstructionTemplate, question, b.formatSources(sources))
}

// BuildAnalysis builds the single-document summarization prompt
func (b *Builder) BuildAnalysis(source Source) string {
	return fmt.Sprintf(analysisInstructionTemplate, b.formatSources([]Source{source}))
}

// BuildDocumentQuestion builds the single-document question answering prompt
func (b *Builder) BuildDocumentQuestion(question string, source Source) string {
	return fmt.Sprintf(documentQuestionTemplate, question, b.formatSources([]Source{source}))
}

func (b *Builder) formatSources(sources []Source) string {
	var buf strings.Builder
	for i, src := range sources {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		if src.ID != 0 {
			buf.WriteString(fmt.Sprintf("=== Policy %d: %s ===\n", src.ID, src.Title))
		} else {
			buf.WriteString(fmt.Sprintf("=== Document %d: %s ===\n", i+1, src.Title))
		}
		buf.WriteString(b.truncate(src.Content))
	}
	return buf.String()
}

func (b *Builder) truncate(content string) string {
	if len(content) <= b.ceiling {
		return content
	}
	return content[:b.ceiling] + TruncationMarker
}
