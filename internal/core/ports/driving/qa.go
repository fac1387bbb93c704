package driving

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// QAService answers questions from stored documents.
type QAService interface {
	// Answer retrieves relevant chunks and generates an answer.
	// Generation failures are reported in Answer.Error.
	Answer(ctx context.Context, question string) domain.Answer
}

// SummaryService condenses document text.
type SummaryService interface {
	// GenerateSummary returns a summary of text. Long texts are
	// summarised piecewise before a final pass.
	GenerateSummary(ctx context.Context, text string) (string, error)
}
