package driving

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// IngestService loads files into the vector store.
type IngestService interface {
	// ProcessFile ingests one file. Failures are reported in the result,
	// never returned as a Go error.
	ProcessFile(ctx context.Context, path string, force bool) domain.IngestResult

	// ProcessDirectory ingests every supported file under dir, recursively.
	// A failing file is recorded and does not abort the batch.
	// Returns an error only if dir itself cannot be walked.
	ProcessDirectory(ctx context.Context, dir string, force bool) (*domain.DirectoryResult, error)

	// Stats returns aggregate store counts.
	Stats(ctx context.Context) (domain.Stats, error)
}
