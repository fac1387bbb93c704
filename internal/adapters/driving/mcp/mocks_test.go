package mcp

import (
	"context"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// mockQAService is a mock implementation of driving.QAService.
type mockQAService struct {
	answer   domain.Answer
	question string
}

func (m *mockQAService) Answer(_ context.Context, question string) domain.Answer {
	m.question = question
	return m.answer
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	file     domain.IngestResult
	dir      *domain.DirectoryResult
	stats    domain.Stats
	err      error
	lastPath string
	force    bool
}

func (m *mockIngestService) ProcessFile(_ context.Context, path string, force bool) domain.IngestResult {
	m.lastPath, m.force = path, force
	return m.file
}

func (m *mockIngestService) ProcessDirectory(_ context.Context, dir string, force bool) (*domain.DirectoryResult, error) {
	m.lastPath, m.force = dir, force
	return m.dir, m.err
}

func (m *mockIngestService) Stats(_ context.Context) (domain.Stats, error) {
	return m.stats, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.DocumentObject
	chunks    []domain.DocumentChunk
	err       error
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.DocumentObject, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.DocumentObject, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.documents[0], nil
}

func (m *mockDocumentService) Chunks(_ context.Context, _ string) ([]domain.DocumentChunk, error) {
	return m.chunks, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Lookup(_ context.Context, _ string) (*domain.DocumentRef, error) {
	return nil, m.err
}

// newTestServer builds a server over the given document service.
func newTestServer(qa *mockQAService, ingest *mockIngestService, docs *mockDocumentService) *Server {
	ports := &Ports{QA: qa, Ingest: ingest}
	if docs != nil {
		ports.Document = docs
	}
	server, err := NewServer(ports)
	if err != nil {
		panic(err)
	}
	return server
}
