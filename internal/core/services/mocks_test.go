package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding []float32
	embedErr  error
	dims      int

	mu     sync.Mutex
	inputs []string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, text)
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, texts...)
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return len(m.embedding)
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockLLMService implements driven.LLMService for testing.
// respond, when set, computes the reply from the user message.
type mockLLMService struct {
	response string
	chatErr  error
	respond  func(user string) (string, error)

	mu    sync.Mutex
	calls [][]driven.ChatMessage
}

func (m *mockLLMService) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	return m.response, m.chatErr
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, messages)
	m.mu.Unlock()

	if m.respond != nil {
		return m.respond(messages[len(messages)-1].Content)
	}
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

func (m *mockLLMService) userMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c[len(c)-1].Content
	}
	return out
}

// mockLoader implements driven.DocumentLoader for testing.
type mockLoader struct {
	docs    map[string]*domain.LoadedDocument
	loadErr error
}

func (m *mockLoader) Load(_ context.Context, path string) (*domain.LoadedDocument, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	doc, ok := m.docs[path]
	if !ok {
		return nil, domain.ErrLoadFailure
	}
	copied := *doc
	return &copied, nil
}

func (m *mockLoader) Supports(path string) bool {
	return strings.HasSuffix(path, ".txt") || strings.HasSuffix(path, ".pdf")
}

// mockSummarizer implements driving.SummaryService for testing.
type mockSummarizer struct {
	summary string
	err     error
}

func (m *mockSummarizer) GenerateSummary(_ context.Context, _ string) (string, error) {
	return m.summary, m.err
}

// mockEntityExtractor implements driven.EntityExtractor for testing.
type mockEntityExtractor struct {
	err error
}

func (m *mockEntityExtractor) Extract(_ context.Context, text string) (*domain.ExtractionResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ExtractionResult{
		Entities: []domain.NamedEntity{
			{Text: text, Label: domain.EntityMISC, StartChar: 0, EndChar: len(text), Confidence: 1},
		},
		ModelVersion: "mock-ner",
	}, nil
}

func (m *mockEntityExtractor) ModelVersion() string {
	return "mock-ner"
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (m *mockPromptStore) Reload() {}

// mockSplitter implements driven.TextSplitter by fixed-width cutting.
type mockSplitter struct {
	size int
}

func (m *mockSplitter) Split(text string) []string {
	runes := []rune(text)
	var pieces []string
	for start := 0; start < len(runes); start += m.size {
		end := min(start+m.size, len(runes))
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

// textDocument builds a loaded text document from paragraphs on page 1.
func textDocument(path string, paragraphs ...string) *domain.LoadedDocument {
	frags := make([]domain.Fragment, len(paragraphs))
	for i, p := range paragraphs {
		frags[i] = domain.Fragment{Text: p, PageNumber: 1, ElementType: domain.ElementNarrativeText}
	}
	return &domain.LoadedDocument{
		FilePath:  path,
		Filename:  path[strings.LastIndex(path, "/")+1:],
		FileType:  domain.DocTypeText,
		Fragments: frags,
		Pages:     1,
		FileSize:  int64(len(strings.Join(paragraphs, ""))),
	}
}
