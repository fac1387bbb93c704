package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure QAService implements the interface.
var _ driving.QAService = (*QAService)(nil)

// Fixed answers for the terminal states that produce no generated text.
const (
	NoInformationAnswer   = "Unfortunately, no information matching your question was found in the knowledge base."
	GenerationErrorAnswer = "An error occurred while generating the answer."
)

// QAService answers questions from stored document chunks.
type QAService struct {
	store       driven.VectorStore
	embedder    driven.EmbeddingService
	llm         driven.LLMService
	promptStore driven.PromptStore
	topK        int
}

// NewQAService creates a new QA service retrieving domain.DefaultTopK chunks.
func NewQAService(store driven.VectorStore, embedder driven.EmbeddingService, llm driven.LLMService) *QAService {
	return &QAService{
		store:    store,
		embedder: embedder,
		llm:      llm,
		topK:     domain.DefaultTopK,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *QAService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// SetTopK sets how many chunks are retrieved per question. Non-positive
// values restore the default.
func (s *QAService) SetTopK(k int) {
	if k <= 0 {
		k = domain.DefaultTopK
	}
	s.topK = k
}

// Answer retrieves relevant chunks and asks the LLM to answer from them.
func (s *QAService) Answer(ctx context.Context, question string) domain.Answer {
	logger.Section("Question Answering")
	logger.Debug("Question: %q", question)

	if s.embedder == nil {
		return failedAnswer(domain.ErrEmbeddingUnavailable)
	}
	if s.llm == nil {
		return failedAnswer(domain.ErrLLMUnavailable)
	}

	vec, err := s.embedder.Embed(ctx, driven.QueryPrefix+question)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return failedAnswer(fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err))
	}

	results, err := s.store.Search(ctx, vec, s.topK, true)
	if err != nil {
		logger.Error("Search failed: %v", err)
		results = nil
	}
	logger.Debug("Retrieved %d chunks", len(results))

	if len(results) == 0 {
		return domain.Answer{Text: NoInformationAnswer, Sources: []domain.Source{}}
	}

	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: loadPrompt(s.promptStore, driven.PromptQASystem)},
		{Role: driven.RoleUser, Content: fmt.Sprintf(loadPrompt(s.promptStore, driven.PromptQAUser),
			formatContext(results), question)},
	}

	text, err := s.llm.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		logger.Warn("Generation failed: %v", err)
		return failedAnswer(fmt.Errorf("%w: %w", domain.ErrGenerationFailure, err))
	}

	sources := make([]domain.Source, len(results))
	for i, r := range results {
		sources[i] = domain.Source{File: r.Filename, Page: r.PageNumber}
	}

	logger.Info("Answered from %d chunks", len(results))
	return domain.Answer{Text: strings.TrimSpace(text), Sources: sources}
}

// formatContext lays out one summary per distinct file, then the numbered
// fragments in relevance order.
func formatContext(results []domain.SearchResult) string {
	var b strings.Builder

	seen := make(map[string]bool)
	for _, r := range results {
		if r.Summary == "" || seen[r.Filename] {
			continue
		}
		seen[r.Filename] = true
		fmt.Fprintf(&b, "\n--- DOCUMENT SUMMARY (File: %s) ---\n%s\n", r.Filename, r.Summary)
	}

	for i, r := range results {
		fmt.Fprintf(&b, "\n--- FRAGMENT %d (File: %s, Page: %d) ---\n%s\n", i+1, r.Filename, r.PageNumber, r.Content)
	}

	return b.String()
}

func failedAnswer(err error) domain.Answer {
	return domain.Answer{
		Text:    GenerationErrorAnswer,
		Sources: []domain.Source{},
		Error:   err.Error(),
	}
}
