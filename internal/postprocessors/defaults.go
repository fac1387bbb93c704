package postprocessors

import (
	"fmt"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/postprocessors/chunker"
	"github.com/custodia-labs/documind/internal/postprocessors/confidence"
	"github.com/custodia-labs/documind/internal/postprocessors/whitespace"
)

// DefaultPipeline builds the pipeline applied to every loaded document:
// whitespace cleanup, the OCR confidence filter, then chunking of oversized
// fragments.
func DefaultPipeline(settings domain.AppSettings) (*Pipeline, error) {
	minConf := settings.OCR.MinConfidence
	if minConf < 0 || minConf >= 1 {
		return nil, fmt.Errorf("%w: ocr min_confidence %.2f must be in [0, 1)", domain.ErrInvalidInput, minConf)
	}

	return NewPipeline(
		whitespace.New(),
		confidence.New(minConf),
		chunker.New(
			chunker.WithChunkSize(settings.Chunking.ChunkSize),
			chunker.WithOverlap(settings.Chunking.ChunkOverlap),
		),
	), nil
}
