package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

// Ensure Summarizer implements the interface.
var _ driving.SummaryService = (*Summarizer)(nil)

// Summary strategy parameters.
const (
	// SummaryDirectThreshold is the text length, in characters, below which
	// the text is summarised in a single call.
	SummaryDirectThreshold = 15000

	// SummaryChunkSize and SummaryChunkOverlap configure the splitter used
	// for the map step.
	SummaryChunkSize    = 8000
	SummaryChunkOverlap = 500
)

// Summarizer condenses document text, directly for short texts and with a
// map-reduce pass for long ones.
type Summarizer struct {
	llm         driven.LLMService
	splitter    driven.TextSplitter
	promptStore driven.PromptStore
	temperature float64
	threshold   int
}

// NewSummarizer creates a summarizer. The splitter should produce pieces of
// roughly SummaryChunkSize characters with SummaryChunkOverlap overlap.
func NewSummarizer(llm driven.LLMService, splitter driven.TextSplitter) *Summarizer {
	return &Summarizer{
		llm:         llm,
		splitter:    splitter,
		temperature: domain.DefaultSummaryTemp,
		threshold:   SummaryDirectThreshold,
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *Summarizer) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// SetTemperature overrides the sampling temperature of summary calls.
func (s *Summarizer) SetTemperature(t float64) {
	s.temperature = t
}

// GenerateSummary returns a summary of text.
// Pieces of a long text that fail to summarise are dropped; the call fails
// only when the final pass fails or no piece could be summarised.
func (s *Summarizer) GenerateSummary(ctx context.Context, text string) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	length := utf8.RuneCountInString(text)
	logger.Info("Summarising text of %d characters", length)

	if length < s.threshold || s.splitter == nil {
		return s.summarise(ctx, driven.PromptSummaryFinal, text)
	}

	pieces := s.splitter.Split(text)
	logger.Info("Large document, map-reduce over %d pieces", len(pieces))

	intermediate := make([]string, 0, len(pieces))
	for i, piece := range pieces {
		logger.Debug("Summarising piece %d/%d", i+1, len(pieces))
		summary, err := s.summarise(ctx, driven.PromptSummaryIntermediate, piece)
		if err != nil {
			logger.Warn("Piece %d/%d failed: %v", i+1, len(pieces), err)
			continue
		}
		intermediate = append(intermediate, summary)
	}

	if len(intermediate) == 0 {
		return "", fmt.Errorf("%w: all %d pieces failed to summarise", domain.ErrGenerationFailure, len(pieces))
	}

	logger.Info("Final pass over %d intermediate summaries", len(intermediate))
	return s.summarise(ctx, driven.PromptSummaryFinal, strings.Join(intermediate, domain.FullTextSeparator))
}

// summarise runs one summary call with the named user prompt template.
func (s *Summarizer) summarise(ctx context.Context, promptName, text string) (string, error) {
	messages := []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: loadPrompt(s.promptStore, driven.PromptSummarySystem)},
		{Role: driven.RoleUser, Content: fmt.Sprintf(loadPrompt(s.promptStore, promptName), text)},
	}

	result, err := s.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: s.temperature})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailure, err)
	}
	return strings.TrimSpace(result), nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func loadPrompt(store driven.PromptStore, name string) string {
	if store == nil {
		return driven.DefaultPrompt(name)
	}
	prompt, err := store.Load(name)
	if err != nil || prompt == "" {
		return driven.DefaultPrompt(name)
	}
	return prompt
}
