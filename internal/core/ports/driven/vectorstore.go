package driven

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// VectorStore is the sole interface to persistent storage. It owns the
// two record collections (documents and chunks), the chunk-to-document
// reference between them, and similarity search over chunk vectors.
//
// Connection failures surface from the adapter constructor as
// domain.ErrStoreConnection. Per-operation failures are returned as errors
// wrapping domain.ErrStoreOperation and callers decide how to degrade.
type VectorStore interface {
	// EnsureSchema creates both collections and the reference if absent.
	// Safe to call on every startup.
	EnsureSchema(ctx context.Context) error

	// DocumentExists looks up a document by content hash.
	// Returns domain.ErrNotFound when no document has the hash.
	DocumentExists(ctx context.Context, contentHash string) (*domain.DocumentRef, error)

	// CreateDocument inserts a parent record and returns its ID.
	// Returns domain.ErrDuplicateDocument if the content hash is already stored.
	CreateDocument(ctx context.Context, doc *domain.DocumentObject) (string, error)

	// UpsertChunksLinked inserts chunks with their vectors, each linked to
	// documentID. Returns domain.ErrSizeMismatch, before touching the store,
	// when len(chunks) != len(vectors). A partial failure returns a
	// *domain.BatchError; successfully written chunks are kept.
	UpsertChunksLinked(ctx context.Context, chunks []domain.DocumentChunk, vectors [][]float32, documentID string) error

	// Search returns up to limit chunks ordered by ascending vector distance.
	// Each result carries its parent's filename and type, and the parent
	// summary when includeSummary is set.
	Search(ctx context.Context, vector []float32, limit int, includeSummary bool) ([]domain.SearchResult, error)

	// DeleteDocument removes all chunks of the document, then the document.
	// Returns false, after logging, on any failure or if nothing was deleted.
	DeleteDocument(ctx context.Context, id string) bool

	// GetStats returns aggregate counts.
	GetStats(ctx context.Context) (domain.Stats, error)

	// GetDocument retrieves a parent record by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.DocumentObject, error)

	// ListDocuments returns all parent records, newest first.
	ListDocuments(ctx context.Context) ([]domain.DocumentObject, error)

	// GetChunks returns a document's chunks ordered by chunk index.
	GetChunks(ctx context.Context, documentID string) ([]domain.DocumentChunk, error)

	// Close releases the store connection.
	Close() error
}
