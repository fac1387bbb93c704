package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/documind/internal/adapters/driven/storage/vector"
	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore.
// Contents are lost when the process exits.
type VectorStore struct {
	mu        sync.RWMutex
	documents map[string]domain.DocumentObject
	byHash    map[string]string
	chunks    map[string][]domain.DocumentChunk
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		documents: make(map[string]domain.DocumentObject),
		byHash:    make(map[string]string),
		chunks:    make(map[string][]domain.DocumentChunk),
	}
}

// EnsureSchema is a no-op; the maps are created by the constructor.
func (s *VectorStore) EnsureSchema(_ context.Context) error {
	return nil
}

// DocumentExists looks up a document by content hash.
func (s *VectorStore) DocumentExists(_ context.Context, contentHash string) (*domain.DocumentRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byHash[contentHash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	doc := s.documents[id]
	return &domain.DocumentRef{
		ID:       doc.ID,
		Filename: doc.Filename,
		Summary:  doc.Summary,
		AddedAt:  doc.AddedAt,
	}, nil
}

// CreateDocument inserts a parent record and returns its ID.
func (s *VectorStore) CreateDocument(_ context.Context, doc *domain.DocumentObject) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byHash[doc.ContentHash]; ok {
		return "", fmt.Errorf("%w: hash already stored as %s", domain.ErrDuplicateDocument, existing)
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if doc.AddedAt.IsZero() {
		doc.AddedAt = now
	}
	doc.UpdatedAt = now

	s.documents[doc.ID] = *doc
	s.byHash[doc.ContentHash] = doc.ID
	return doc.ID, nil
}

// GetDocument retrieves a parent record by ID.
func (s *VectorStore) GetDocument(_ context.Context, id string) (*domain.DocumentObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all parent records, newest first.
func (s *VectorStore) ListDocuments(_ context.Context) ([]domain.DocumentObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.DocumentObject, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].AddedAt.After(docs[j].AddedAt)
	})
	return docs, nil
}

// UpsertChunksLinked stores chunks with their vectors under documentID.
func (s *VectorStore) UpsertChunksLinked(
	_ context.Context, chunks []domain.DocumentChunk, vectors [][]float32, documentID string,
) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks, %d vectors", domain.ErrSizeMismatch, len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[documentID]; !ok {
		return &domain.BatchError{
			Failed: len(chunks),
			Total:  len(chunks),
			Cause:  fmt.Errorf("parent %s: %w", documentID, domain.ErrNotFound),
		}
	}

	for i, chunk := range chunks {
		if chunk.ID == "" {
			chunk.ID = uuid.New().String()
		}
		chunk.DocumentID = documentID
		chunk.Embedding = vectors[i]
		s.chunks[documentID] = append(s.chunks[documentID], chunk)
	}
	return nil
}

// GetChunks returns a document's chunks ordered by chunk index.
func (s *VectorStore) GetChunks(_ context.Context, documentID string) ([]domain.DocumentChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.DocumentChunk, len(s.chunks[documentID]))
	copy(chunks, s.chunks[documentID])
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})
	return chunks, nil
}

// Search compares the query with every stored chunk vector.
func (s *VectorStore) Search(
	_ context.Context, query []float32, limit int, includeSummary bool,
) ([]domain.SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.SearchResult
	for docID, chunks := range s.chunks {
		doc := s.documents[docID]
		for _, c := range chunks {
			distance, err := vector.CosineDistance(query, c.Embedding)
			if err != nil {
				continue
			}
			r := domain.SearchResult{
				ChunkID:     c.ID,
				DocumentID:  docID,
				Content:     c.Content,
				PageNumber:  c.PageNumber,
				ChunkIndex:  c.ChunkIndex,
				ElementType: c.ElementType,
				Filename:    doc.Filename,
				DocType:     doc.DocType,
				Distance:    distance,
			}
			if includeSummary {
				r.Summary = doc.Summary
			}
			results = append(results, r)
		}
	}

	return vector.SortAndLimit(results, limit), nil
}

// DeleteDocument removes the document's chunks, then the document.
func (s *VectorStore) DeleteDocument(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		logger.Warn("delete document %s: not found", id)
		return false
	}

	delete(s.chunks, id)
	delete(s.byHash, doc.ContentHash)
	delete(s.documents, id)
	return true
}

// GetStats returns aggregate counts.
func (s *VectorStore) GetStats(_ context.Context) (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, chunks := range s.chunks {
		total += len(chunks)
	}

	stats := domain.NewStats(len(s.documents), total)
	stats.DocumentsByType = make(map[domain.DocType]int)
	for _, doc := range s.documents {
		stats.DocumentsByType[doc.DocType]++
	}
	return stats, nil
}

// Close is a no-op.
func (s *VectorStore) Close() error {
	return nil
}
