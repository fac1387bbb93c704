// Package postprocessors provides fragment processing implementations.
package postprocessors

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

// Pipeline chains multiple FragmentProcessors and runs them in order.
type Pipeline struct {
	processors []driven.FragmentProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.FragmentProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the document's fragments through all processors in order
// and returns the final fragments. The document is not modified.
func (p *Pipeline) Process(ctx context.Context, doc *domain.LoadedDocument) ([]domain.Fragment, error) {
	_, fragments, err := p.Run(ctx, doc)
	return fragments, err
}

// Run is Process that also returns the document's full text: the
// fragments as they stood before the first splitting processor, joined by
// domain.FullTextSeparator. Without a splitter it is the final fragments.
func (p *Pipeline) Run(ctx context.Context, doc *domain.LoadedDocument) (string, []domain.Fragment, error) {
	if doc == nil {
		return "", nil, fmt.Errorf("document is nil")
	}

	fragments := doc.Fragments
	var text string
	captured := false
	for _, processor := range p.processors {
		if s, ok := processor.(driven.SplittingProcessor); ok && s.Splits() && !captured {
			text, captured = joinText(fragments), true
		}
		var err error
		fragments, err = processor.Process(ctx, doc, fragments)
		if err != nil {
			return "", nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}
	if !captured {
		text = joinText(fragments)
	}

	return text, fragments, nil
}

func joinText(fragments []domain.Fragment) string {
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	return strings.Join(texts, domain.FullTextSeparator)
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.FragmentProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}
