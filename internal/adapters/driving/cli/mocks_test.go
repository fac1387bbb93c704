package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// mockIngestService implements driving.IngestService.
type mockIngestService struct {
	fileResult domain.IngestResult
	dirResult  *domain.DirectoryResult
	stats      domain.Stats
	err        error
	paths      []string
	force      bool
}

func (m *mockIngestService) ProcessFile(_ context.Context, path string, force bool) domain.IngestResult {
	m.paths = append(m.paths, path)
	m.force = force
	return m.fileResult
}

func (m *mockIngestService) ProcessDirectory(_ context.Context, dir string, force bool) (*domain.DirectoryResult, error) {
	m.paths = append(m.paths, dir)
	m.force = force
	if m.err != nil {
		return nil, m.err
	}
	return m.dirResult, nil
}

func (m *mockIngestService) Stats(_ context.Context) (domain.Stats, error) {
	return m.stats, m.err
}

// mockQAService implements driving.QAService.
type mockQAService struct {
	answer   domain.Answer
	question string
}

func (m *mockQAService) Answer(_ context.Context, question string) domain.Answer {
	m.question = question
	return m.answer
}

// mockDocumentService implements driving.DocumentService.
type mockDocumentService struct {
	docs    []domain.DocumentObject
	chunks  []domain.DocumentChunk
	ref     *domain.DocumentRef
	err     error
	deleted string
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.DocumentObject, error) {
	return m.docs, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.DocumentObject, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) Chunks(_ context.Context, _ string) ([]domain.DocumentChunk, error) {
	return m.chunks, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = id
	return nil
}

func (m *mockDocumentService) Lookup(_ context.Context, _ string) (*domain.DocumentRef, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.ref == nil {
		return nil, domain.ErrNotFound
	}
	return m.ref, nil
}

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	saved       *domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.saved = settings
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.Embedding = domain.EmbeddingSettings{Provider: provider, Model: model, APIKey: apiKey}
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM = domain.LLMSettings{Provider: provider, Model: model, APIKey: apiKey}
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) ValidateEmbeddingConfig() error { return nil }

func (m *mockSettingsService) ValidateLLMConfig() error { return nil }

// mockPromptStore implements PromptInitializer.
type mockPromptStore struct {
	initialised bool
}

func (m *mockPromptStore) Init() error {
	m.initialised = true
	return nil
}

func (m *mockPromptStore) Dir() string { return "/tmp/prompts" }

// testServices are the mocks installed by setupTestServices.
type testServices struct {
	ingest    *mockIngestService
	qa        *mockQAService
	documents *mockDocumentService
	settings  *mockSettingsService
	prompts   *mockPromptStore
}

var testAddedAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// setupTestServices installs mock services and returns them with a
// cleanup that restores the previous state.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		ingest: &mockIngestService{
			fileResult: domain.IngestResult{
				Status: domain.IngestSuccess, Document: "report.pdf", DocumentID: "doc-1",
				ChunkProcessed: 12, TotalPages: 4,
			},
			dirResult: &domain.DirectoryResult{},
			stats: domain.Stats{
				TotalDocuments: 2, TotalChunks: 30, AvgChunksPerDoc: 15,
				DocumentsByType: map[domain.DocType]int{domain.DocTypePDF: 1, domain.DocTypeText: 1},
			},
		},
		qa: &mockQAService{answer: domain.Answer{
			Text:    "Revenue was 10M.",
			Sources: []domain.Source{{File: "report.pdf", Page: 2}, {File: "report.pdf", Page: 2}},
		}},
		documents: &mockDocumentService{docs: []domain.DocumentObject{{
			ID: "doc-1", Filename: "report.pdf", DocType: domain.DocTypePDF,
			Summary: "Annual report.", ContentHash: "abc", FileSize: 2048,
			TotalPages: 4, TotalChunks: 12, AddedAt: testAddedAt, UpdatedAt: testAddedAt,
		}}},
		settings: &mockSettingsService{settings: domain.DefaultAppSettings()},
		prompts:  &mockPromptStore{},
	}

	prevBuilder := builder
	builder = nil
	useServices(&Services{
		Ingest:    ts.ingest,
		QA:        ts.qa,
		Documents: ts.documents,
		Settings:  ts.settings,
		Prompts:   ts.prompts,
		Supports:  func(string) bool { return true },
	})

	return ts, func() {
		builder = prevBuilder
		useServices(&Services{})
		formatFlag = formatText
		ingestForce, showChunks, configInitForce = false, false, false
		watchForce, watchInitial = false, false
		askTopK = 0
		configFlag = ""
	}
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
