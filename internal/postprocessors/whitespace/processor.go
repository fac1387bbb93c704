// Package whitespace normalises fragment text.
package whitespace

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.FragmentProcessor = (*Processor)(nil)

// Processor collapses runs of whitespace to a single space, trims each
// fragment and drops fragments left empty. Fragments without an element
// type are marked UncategorizedText.
type Processor struct{}

// New creates a whitespace processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "whitespace"
}

// Process normalises every fragment.
func (p *Processor) Process(
	_ context.Context, _ *domain.LoadedDocument, fragments []domain.Fragment,
) ([]domain.Fragment, error) {
	out := make([]domain.Fragment, 0, len(fragments))
	for _, f := range fragments {
		f.Text = Clean(f.Text)
		if f.Text == "" {
			continue
		}
		if f.ElementType == "" {
			f.ElementType = domain.ElementUncategorized
		}
		if f.PageNumber < 1 {
			f.PageNumber = 1
		}
		out = append(out, f)
	}
	return out, nil
}

// Clean composes the text to NFC, collapses whitespace runs and trims.
func Clean(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}
