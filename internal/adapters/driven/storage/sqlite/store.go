package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/custodia-labs/documind/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/documind/internal/adapters/driven/storage/vector"
	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/logger"
)

// BatchSize is the number of chunks written per transaction.
const BatchSize = 50

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed vector store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the store at the specified data directory and ensures the
// schema exists. If dataDir is empty, defaults to ~/.documind/data.
// Failures wrap domain.ErrStoreConnection.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: getting home directory: %v", domain.ErrStoreConnection, err)
		}
		dataDir = filepath.Join(home, ".documind", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", domain.ErrStoreConnection, err)
	}

	dbPath := filepath.Join(dataDir, "documind.db")

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", domain.ErrStoreConnection, err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreConnection, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema runs all pending migrations. It is idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.migrate(ctx, migrations.FS)
}

// migrate runs all pending migrations.
func (s *Store) migrate(ctx context.Context, fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Documents ====================

// DocumentExists looks up a document by content hash.
func (s *Store) DocumentExists(ctx context.Context, contentHash string) (*domain.DocumentRef, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, summary, added_at
		FROM document_objects WHERE content_hash = ?
	`, contentHash)

	var ref domain.DocumentRef
	if err := row.Scan(&ref.ID, &ref.Filename, &ref.Summary, &ref.AddedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: looking up content hash: %v", domain.ErrStoreOperation, err)
	}
	return &ref, nil
}

// CreateDocument inserts a parent record and returns its ID.
func (s *Store) CreateDocument(ctx context.Context, doc *domain.DocumentObject) (string, error) {
	// Re-check before insert; the UNIQUE constraint closes the remaining race.
	if existing, err := s.DocumentExists(ctx, doc.ContentHash); err == nil {
		return "", fmt.Errorf("%w: hash already stored as %s", domain.ErrDuplicateDocument, existing.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	id := doc.ID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	addedAt := doc.AddedAt
	if addedAt.IsZero() {
		addedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO document_objects
			(id, filename, doc_type, summary, content_hash, file_size, total_pages, total_chunks, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, doc.Filename, string(doc.DocType), doc.Summary, doc.ContentHash,
		doc.FileSize, doc.TotalPages, doc.TotalChunks, addedAt, now)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%w: %v", domain.ErrDuplicateDocument, err)
		}
		return "", fmt.Errorf("%w: inserting document: %v", domain.ErrStoreOperation, err)
	}

	doc.ID = id
	doc.AddedAt = addedAt
	doc.UpdatedAt = now
	return id, nil
}

// GetDocument retrieves a parent record by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.DocumentObject, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, doc_type, summary, content_hash, file_size, total_pages, total_chunks, added_at, updated_at
		FROM document_objects WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning document: %v", domain.ErrStoreOperation, err)
	}
	return doc, nil
}

// ListDocuments returns all parent records, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.DocumentObject, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, doc_type, summary, content_hash, file_size, total_pages, total_chunks, added_at, updated_at
		FROM document_objects ORDER BY added_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying documents: %v", domain.ErrStoreOperation, err)
	}
	defer rows.Close()

	var docs []domain.DocumentObject //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning document: %v", domain.ErrStoreOperation, err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating documents: %v", domain.ErrStoreOperation, err)
	}
	return docs, nil
}

// DeleteDocument removes all chunks of the document, then the document,
// in one transaction.
func (s *Store) DeleteDocument(ctx context.Context, id string) bool {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("delete document %s: beginning transaction: %v", id, err)
		return false
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, "DELETE FROM document_chunks WHERE document_id = ?", id)
	if err != nil {
		logger.Error("delete document %s: deleting chunks: %v", id, err)
		return false
	}
	chunks, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, "DELETE FROM document_objects WHERE id = ?", id)
	if err != nil {
		logger.Error("delete document %s: deleting parent: %v", id, err)
		return false
	}
	if n, _ := res.RowsAffected(); n == 0 {
		logger.Warn("delete document %s: not found", id)
		return false
	}

	if err := tx.Commit(); err != nil {
		logger.Error("delete document %s: committing: %v", id, err)
		return false
	}

	logger.Debug("Deleted document %s and %d chunks", id, chunks)
	return true
}

// ==================== Chunks ====================

// UpsertChunksLinked writes chunks in transactions of BatchSize rows.
// A row that fails is counted and skipped; the rest of its batch commits.
func (s *Store) UpsertChunksLinked(
	ctx context.Context, chunks []domain.DocumentChunk, vectors [][]float32, documentID string,
) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks, %d vectors", domain.ErrSizeMismatch, len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	failed := 0
	var firstErr error
	record := func(n int, err error) {
		failed += n
		if firstErr == nil {
			firstErr = err
		}
	}

	for start := 0; start < len(chunks); start += BatchSize {
		end := min(start+BatchSize, len(chunks))
		if n, err := s.insertBatch(ctx, chunks[start:end], vectors[start:end], documentID); err != nil {
			record(n, err)
		}
	}

	if failed > 0 {
		logger.Error("%d of %d chunks failed to insert for document %s: %v", failed, len(chunks), documentID, firstErr)
		return &domain.BatchError{Failed: failed, Total: len(chunks), Cause: firstErr}
	}
	return nil
}

// insertBatch writes one batch and returns the number of failed rows.
func (s *Store) insertBatch(
	ctx context.Context, chunks []domain.DocumentChunk, vectors [][]float32, documentID string,
) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return len(chunks), fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO document_chunks
			(id, document_id, content, page_number, chunk_index, element_type, entities_json, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			page_number = excluded.page_number,
			chunk_index = excluded.chunk_index,
			element_type = excluded.element_type,
			entities_json = excluded.entities_json,
			embedding = excluded.embedding
	`)
	if err != nil {
		return len(chunks), fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	failed := 0
	var firstErr error
	for i, chunk := range chunks {
		id := chunk.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx, id, documentID, chunk.Content, chunk.PageNumber,
			chunk.ChunkIndex, chunk.ElementType, chunk.EntitiesJSON, vector.Encode(vectors[i])); err != nil {
			failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("inserting chunk %d: %w", chunk.ChunkIndex, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return len(chunks), fmt.Errorf("committing batch: %w", err)
	}
	return failed, firstErr
}

// GetChunks returns a document's chunks ordered by chunk index.
func (s *Store) GetChunks(ctx context.Context, documentID string) ([]domain.DocumentChunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, content, page_number, chunk_index, element_type, entities_json, embedding
		FROM document_chunks WHERE document_id = ?
		ORDER BY chunk_index
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrStoreOperation, err)
	}
	defer rows.Close()

	var chunks []domain.DocumentChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.DocumentChunk
		var blob []byte
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Content, &c.PageNumber,
			&c.ChunkIndex, &c.ElementType, &c.EntitiesJSON, &blob); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %v", domain.ErrStoreOperation, err)
		}
		if c.Embedding, err = vector.Decode(blob); err != nil {
			return nil, fmt.Errorf("%w: decoding embedding: %v", domain.ErrStoreOperation, err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %v", domain.ErrStoreOperation, err)
	}
	return chunks, nil
}

// ==================== Search ====================

// Search compares the query with every stored chunk vector and returns the
// closest limit chunks, joined with their parent document.
func (s *Store) Search(
	ctx context.Context, query []float32, limit int, includeSummary bool,
) ([]domain.SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.content, c.page_number, c.chunk_index, c.element_type, c.embedding,
			d.filename, d.doc_type, d.summary
		FROM document_chunks c
		JOIN document_objects d ON d.id = c.document_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrStoreOperation, err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	skipped := 0
	for rows.Next() {
		var r domain.SearchResult
		var blob []byte
		var docType, summary string
		if err := rows.Scan(&r.ChunkID, &r.DocumentID, &r.Content, &r.PageNumber, &r.ChunkIndex,
			&r.ElementType, &blob, &r.Filename, &docType, &summary); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %v", domain.ErrStoreOperation, err)
		}

		vec, err := vector.Decode(blob)
		if err != nil {
			skipped++
			continue
		}
		r.Distance, err = vector.CosineDistance(query, vec)
		if err != nil {
			skipped++
			continue
		}

		r.DocType = domain.DocType(docType)
		if includeSummary {
			r.Summary = summary
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %v", domain.ErrStoreOperation, err)
	}

	if skipped > 0 {
		logger.Warn("Search skipped %d chunks with incomparable vectors", skipped)
	}

	return vector.SortAndLimit(results, limit), nil
}

// ==================== Stats ====================

// GetStats returns aggregate counts.
func (s *Store) GetStats(ctx context.Context) (domain.Stats, error) {
	var docs, chunks int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM document_objects").Scan(&docs); err != nil {
		return domain.Stats{}, fmt.Errorf("%w: counting documents: %v", domain.ErrStoreOperation, err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM document_chunks").Scan(&chunks); err != nil {
		return domain.Stats{}, fmt.Errorf("%w: counting chunks: %v", domain.ErrStoreOperation, err)
	}

	stats := domain.NewStats(docs, chunks)

	rows, err := s.db.QueryContext(ctx, "SELECT doc_type, COUNT(*) FROM document_objects GROUP BY doc_type")
	if err != nil {
		return domain.Stats{}, fmt.Errorf("%w: counting by type: %v", domain.ErrStoreOperation, err)
	}
	defer rows.Close()

	stats.DocumentsByType = make(map[domain.DocType]int)
	for rows.Next() {
		var docType string
		var n int
		if err := rows.Scan(&docType, &n); err != nil {
			return domain.Stats{}, fmt.Errorf("%w: scanning type count: %v", domain.ErrStoreOperation, err)
		}
		stats.DocumentsByType[domain.DocType(docType)] = n
	}
	if err := rows.Err(); err != nil {
		return domain.Stats{}, fmt.Errorf("%w: iterating type counts: %v", domain.ErrStoreOperation, err)
	}

	return stats, nil
}

// ==================== Helpers ====================

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.DocumentObject, error) {
	var doc domain.DocumentObject
	var docType string
	if err := row.Scan(&doc.ID, &doc.Filename, &docType, &doc.Summary, &doc.ContentHash,
		&doc.FileSize, &doc.TotalPages, &doc.TotalChunks, &doc.AddedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	doc.DocType = domain.DocType(docType)
	return &doc, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
