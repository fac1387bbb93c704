package driven

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// DocumentLoader turns a file into a LoadedDocument.
// Fragments are whitespace-normalised and empty fragments are dropped.
type DocumentLoader interface {
	// Load reads and extracts the file at path.
	// Failures wrap domain.ErrLoadFailure.
	Load(ctx context.Context, path string) (*domain.LoadedDocument, error)

	// Supports reports whether the path has an ingestible extension.
	Supports(path string) bool
}

// Extractor pulls positioned text fragments out of one file format.
type Extractor interface {
	// DocType returns the document type this extractor produces.
	DocType() domain.DocType

	// Extensions returns the lower-case file extensions handled, with dot.
	Extensions() []string

	// Extract returns the raw fragments of the file in document order.
	Extract(ctx context.Context, path string) ([]domain.Fragment, error)
}

// FragmentProcessor transforms the fragments of a loaded document.
// Processors are chained in a pipeline (normalise, filter, split).
type FragmentProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process receives the fragments produced so far and returns the new set.
	Process(ctx context.Context, doc *domain.LoadedDocument, fragments []domain.Fragment) ([]domain.Fragment, error)
}

// SplittingProcessor is a FragmentProcessor whose output overlaps.
// The fragments it receives form the document's full text.
type SplittingProcessor interface {
	FragmentProcessor
	Splits() bool
}

// TextSplitter breaks long text into overlapping pieces.
type TextSplitter interface {
	// Split returns the pieces of text in order. Empty text yields none.
	Split(text string) []string
}
