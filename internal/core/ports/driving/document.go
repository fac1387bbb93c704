package driving

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// DocumentService exposes stored documents for inspection and removal.
type DocumentService interface {
	// List returns all stored documents, newest first.
	List(ctx context.Context) ([]domain.DocumentObject, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (*domain.DocumentObject, error)

	// Chunks returns a document's chunks in order.
	Chunks(ctx context.Context, id string) ([]domain.DocumentChunk, error)

	// Delete removes a document and all its chunks.
	Delete(ctx context.Context, id string) error

	// Lookup loads the file at path and returns the stored document with
	// the same content hash. Returns domain.ErrNotFound if none is stored.
	Lookup(ctx context.Context, path string) (*domain.DocumentRef, error)
}
