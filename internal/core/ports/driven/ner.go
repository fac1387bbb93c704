package driven

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// EntityExtractor tags named entities in text.
// This is an optional service - when nil, chunks are stored without entities.
type EntityExtractor interface {
	// Extract returns the entities found in text.
	Extract(ctx context.Context, text string) (*domain.ExtractionResult, error)

	// ModelVersion identifies the model producing the entities.
	ModelVersion() string
}
