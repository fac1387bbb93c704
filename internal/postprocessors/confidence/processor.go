// Package confidence drops low-confidence OCR fragments.
package confidence

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/logger"
)

// DefaultMinConfidence is the threshold a span must exceed to be kept.
const DefaultMinConfidence = domain.DefaultOCRMinConfidence

// Ensure Processor implements the interface.
var _ driven.FragmentProcessor = (*Processor)(nil)

// Processor keeps OCR fragments whose confidence is strictly above the
// threshold. Fragments of other element types are not touched.
type Processor struct {
	min float64
}

// New creates a processor with the given threshold.
// A negative threshold falls back to DefaultMinConfidence.
func New(minConfidence float64) *Processor {
	if minConfidence < 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Processor{min: minConfidence}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "confidence"
}

// Process filters OCR fragments by confidence.
func (p *Processor) Process(
	_ context.Context, doc *domain.LoadedDocument, fragments []domain.Fragment,
) ([]domain.Fragment, error) {
	out := make([]domain.Fragment, 0, len(fragments))
	dropped := 0
	for _, f := range fragments {
		if f.ElementType == domain.ElementOCRText && f.Confidence <= p.min {
			dropped++
			continue
		}
		out = append(out, f)
	}
	if dropped > 0 && doc != nil {
		logger.Debug("Dropped %d OCR spans at or below confidence %.2f in %s", dropped, p.min, doc.Filename)
	}
	return out, nil
}
