package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes stored documents.
type DocumentService struct {
	store  driven.VectorStore
	loader driven.DocumentLoader
}

// NewDocumentService creates a new document service.
// The loader is optional (can be nil); Lookup then fails.
func NewDocumentService(store driven.VectorStore, loader driven.DocumentLoader) *DocumentService {
	return &DocumentService{
		store:  store,
		loader: loader,
	}
}

// List returns all stored documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentObject, error) {
	return s.store.ListDocuments(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.DocumentObject, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}
	return s.store.GetDocument(ctx, id)
}

// Chunks returns a document's chunks in order.
func (s *DocumentService) Chunks(ctx context.Context, id string) ([]domain.DocumentChunk, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.GetChunks(ctx, id)
}

// Delete removes a document and all its chunks.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if !s.store.DeleteDocument(ctx, id) {
		return fmt.Errorf("%w: delete %s", domain.ErrStoreOperation, id)
	}
	return nil
}

// Lookup loads the file at path and returns the stored document with the
// same content hash.
func (s *DocumentService) Lookup(ctx context.Context, path string) (*domain.DocumentRef, error) {
	if s.loader == nil {
		return nil, fmt.Errorf("%w: no loader configured", domain.ErrLoadFailure)
	}
	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return s.store.DocumentExists(ctx, domain.ContentHash(doc.FullText()))
}
