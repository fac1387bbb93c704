// Package chunker splits oversized text into overlapping pieces, preferring
// paragraph, line, sentence and word boundaries.
package chunker

import (
	"context"
	"unicode/utf8"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Ensure Processor implements the interface.
var _ driven.SplittingProcessor = (*Processor)(nil)

// Processor splits fragments longer than the chunk size.
// Pieces inherit the page, element type and confidence of their fragment.
type Processor struct {
	chunkSize int
	overlap   int
	splitter  *Splitter
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	p.splitter = NewSplitter(p.chunkSize, p.overlap)
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Splits reports that the chunker's output overlaps.
func (p *Processor) Splits() bool {
	return true
}

// Process splits each oversized fragment; fragments within the limit pass through.
func (p *Processor) Process(
	_ context.Context, _ *domain.LoadedDocument, fragments []domain.Fragment,
) ([]domain.Fragment, error) {
	out := make([]domain.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if utf8.RuneCountInString(f.Text) <= p.chunkSize {
			out = append(out, f)
			continue
		}
		for _, piece := range p.splitter.Split(f.Text) {
			part := f
			part.Text = piece
			out = append(out, part)
		}
	}
	return out, nil
}
