package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService loads documents, deduplicates them by content hash and
// persists a summarised parent record with embedded child chunks.
type IngestService struct {
	loader     driven.DocumentLoader
	store      driven.VectorStore
	embedder   driven.EmbeddingService
	summarizer driving.SummaryService
	entities   driven.EntityExtractor
}

// NewIngestService creates a new ingest service.
// The summarizer is optional (can be nil); documents are then stored without a summary.
func NewIngestService(
	loader driven.DocumentLoader,
	store driven.VectorStore,
	embedder driven.EmbeddingService,
	summarizer driving.SummaryService,
) *IngestService {
	return &IngestService{
		loader:     loader,
		store:      store,
		embedder:   embedder,
		summarizer: summarizer,
	}
}

// SetEntityExtractor enables entity enrichment of chunks.
func (s *IngestService) SetEntityExtractor(extractor driven.EntityExtractor) {
	s.entities = extractor
}

// ProcessFile ingests one file.
func (s *IngestService) ProcessFile(ctx context.Context, path string, force bool) domain.IngestResult {
	filename := filepath.Base(path)
	logger.Section("Ingest " + filename)

	if s.embedder == nil {
		return errorResult(filename, domain.ErrEmbeddingUnavailable)
	}

	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		logger.Warn("Load failed for %s: %v", path, err)
		return errorResult(filename, err)
	}
	if len(doc.Fragments) == 0 {
		return errorResult(filename, fmt.Errorf("%w: no text extracted", domain.ErrLoadFailure))
	}
	logger.Debug("Loaded %d fragments over %d pages", len(doc.Fragments), doc.Pages)

	hash := domain.ContentHash(doc.FullText())
	logger.Debug("Content hash: %s", hash)

	existing, err := s.store.DocumentExists(ctx, hash)
	switch {
	case err == nil && !force:
		logger.Info("Duplicate of %s (%s), skipping", existing.Filename, existing.ID)
		return skippedResult(filename, existing)
	case err == nil:
		logger.Info("Reprocessing: removing %s", existing.ID)
		if !s.store.DeleteDocument(ctx, existing.ID) {
			return errorResult(filename, fmt.Errorf("%w: could not remove existing document %s",
				domain.ErrStoreOperation, existing.ID))
		}
	case !errors.Is(err, domain.ErrNotFound):
		return errorResult(filename, fmt.Errorf("dedup check: %w", err))
	}

	summary := s.summarise(ctx, doc)

	parent := &domain.DocumentObject{
		Filename:    doc.Filename,
		DocType:     doc.FileType,
		Summary:     summary,
		ContentHash: hash,
		FileSize:    doc.FileSize,
		TotalPages:  doc.Pages,
		TotalChunks: len(doc.Fragments),
	}
	id, err := s.store.CreateDocument(ctx, parent)
	if errors.Is(err, domain.ErrDuplicateDocument) {
		// Lost a race with a concurrent ingest of the same content.
		if existing, lookupErr := s.store.DocumentExists(ctx, hash); lookupErr == nil {
			return skippedResult(filename, existing)
		}
	}
	if err != nil {
		return errorResult(filename, fmt.Errorf("create document: %w", err))
	}
	logger.Debug("Created document %s", id)

	chunks := s.buildChunks(ctx, id, doc.Fragments)

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = driven.PassagePrefix + c.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		s.rollback(ctx, id)
		return errorResult(filename, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err))
	}

	result := domain.IngestResult{
		Status:         domain.IngestSuccess,
		Document:       filename,
		DocumentID:     id,
		ChunkProcessed: len(chunks),
		TotalPages:     doc.Pages,
		ContentHash:    hash,
	}

	if err := s.store.UpsertChunksLinked(ctx, chunks, vectors, id); err != nil {
		var batchErr *domain.BatchError
		if errors.As(err, &batchErr) {
			// Written chunks are kept; the document stays with fewer chunks.
			logger.Warn("%d of %d chunks failed to store", batchErr.Failed, batchErr.Total)
			result.Status = domain.IngestError
			result.ChunkProcessed = batchErr.Total - batchErr.Failed
			result.FailedChunks = batchErr.Failed
			result.Message = err.Error()
			return result
		}
		s.rollback(ctx, id)
		return errorResult(filename, fmt.Errorf("store chunks: %w", err))
	}

	logger.Success("Stored %s: %d chunks", filename, len(chunks))
	return result
}

// ProcessDirectory ingests every supported file under dir, recursively.
func (s *IngestService) ProcessDirectory(ctx context.Context, dir string, force bool) (*domain.DirectoryResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	result := &domain.DirectoryResult{}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			result.Add(errorResult(filepath.Base(path), walkErr))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !s.loader.Supports(path) {
			logger.Debug("Skipping unsupported file %s", path)
			return nil
		}
		result.Add(s.ProcessFile(ctx, path, force))
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walk %s: %w", dir, err)
	}

	logger.Info("Directory done: %d processed, %d skipped, %d errors",
		len(result.Processed), len(result.Skipped), len(result.Errors))
	return result, nil
}

// Stats returns aggregate store counts.
func (s *IngestService) Stats(ctx context.Context) (domain.Stats, error) {
	return s.store.GetStats(ctx)
}

// summarise returns the document summary, or "" when summarisation is
// unavailable or fails.
func (s *IngestService) summarise(ctx context.Context, doc *domain.LoadedDocument) string {
	if s.summarizer == nil {
		return ""
	}
	summary, err := s.summarizer.GenerateSummary(ctx, doc.FullText())
	if err != nil {
		logger.Warn("Summary failed, continuing without: %v", err)
		return ""
	}
	return summary
}

// buildChunks converts fragments into chunk records for documentID.
func (s *IngestService) buildChunks(ctx context.Context, documentID string, fragments []domain.Fragment) []domain.DocumentChunk {
	chunks := make([]domain.DocumentChunk, len(fragments))
	for i, f := range fragments {
		chunks[i] = domain.DocumentChunk{
			DocumentID:  documentID,
			Content:     f.Text,
			PageNumber:  f.PageNumber,
			ChunkIndex:  i,
			ElementType: f.ElementType,
		}
		if s.entities != nil {
			chunks[i].EntitiesJSON = s.extractEntities(ctx, f.Text)
		}
	}
	return chunks
}

// extractEntities returns the serialised entities of text, or "" on failure.
func (s *IngestService) extractEntities(ctx context.Context, text string) string {
	res, err := s.entities.Extract(ctx, text)
	if err != nil {
		logger.Warn("Entity extraction failed: %v", err)
		return ""
	}
	data, err := json.Marshal(res)
	if err != nil {
		logger.Warn("Entity serialisation failed: %v", err)
		return ""
	}
	return string(data)
}

// rollback removes a parent whose chunks could not be written at all.
func (s *IngestService) rollback(ctx context.Context, id string) {
	if !s.store.DeleteDocument(ctx, id) {
		logger.Warn("Could not remove document %s after failed ingest", id)
	}
}

func errorResult(filename string, err error) domain.IngestResult {
	return domain.IngestResult{
		Status:   domain.IngestError,
		Document: filename,
		Message:  err.Error(),
	}
}

func skippedResult(filename string, existing *domain.DocumentRef) domain.IngestResult {
	return domain.IngestResult{
		Status:           domain.IngestSkipped,
		Document:         filename,
		Reason:           domain.SkipReasonDuplicate,
		ExistingID:       existing.ID,
		ExistingFilename: existing.Filename,
	}
}
