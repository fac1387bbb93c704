package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

func TestSummarizer_ShortTextSingleCall(t *testing.T) {
	llm := &mockLLMService{response: "  a summary  "}
	s := NewSummarizer(llm, &mockSplitter{size: SummaryChunkSize})

	summary, err := s.GenerateSummary(context.Background(), "short text")

	require.NoError(t, err)
	assert.Equal(t, "a summary", summary)
	require.Len(t, llm.calls, 1)

	msgs := llm.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, driven.RoleSystem, msgs[0].Role)
	assert.Equal(t, driven.DefaultPrompt(driven.PromptSummarySystem), msgs[0].Content)
	assert.Equal(t, driven.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "short text")
	assert.Contains(t, msgs[1].Content, "SUMMARY:")
}

func TestSummarizer_ThresholdIsExclusive(t *testing.T) {
	llm := &mockLLMService{response: "ok"}
	s := NewSummarizer(llm, &mockSplitter{size: SummaryChunkSize})

	_, err := s.GenerateSummary(context.Background(), strings.Repeat("a", SummaryDirectThreshold-1))
	require.NoError(t, err)
	assert.Len(t, llm.calls, 1)

	llm.calls = nil
	_, err = s.GenerateSummary(context.Background(), strings.Repeat("a", SummaryDirectThreshold))
	require.NoError(t, err)
	assert.Greater(t, len(llm.calls), 1)
}

func TestSummarizer_MapReduce(t *testing.T) {
	// 20,000 characters split into 8,000-character pieces: three pieces,
	// three intermediate calls, one final call.
	llm := &mockLLMService{respond: func(user string) (string, error) {
		if strings.Contains(user, "RESTATEMENT:") {
			return "piece-summary", nil
		}
		return "final-summary", nil
	}}
	s := NewSummarizer(llm, &mockSplitter{size: SummaryChunkSize})

	summary, err := s.GenerateSummary(context.Background(), strings.Repeat("x", 20000))

	require.NoError(t, err)
	assert.Equal(t, "final-summary", summary)

	users := llm.userMessages()
	require.Len(t, users, 4)
	for _, u := range users[:3] {
		assert.Contains(t, u, "RESTATEMENT:")
	}
	final := users[3]
	assert.Contains(t, final, "SUMMARY:")
	assert.Contains(t, final, "piece-summary\n\npiece-summary\n\npiece-summary")
}

func TestSummarizer_MapReduceDropsFailedPieces(t *testing.T) {
	calls := 0
	llm := &mockLLMService{respond: func(user string) (string, error) {
		if strings.Contains(user, "RESTATEMENT:") {
			calls++
			if calls == 2 {
				return "", errors.New("timeout")
			}
			return "piece", nil
		}
		return "final", nil
	}}
	s := NewSummarizer(llm, &mockSplitter{size: SummaryChunkSize})

	summary, err := s.GenerateSummary(context.Background(), strings.Repeat("y", 20000))

	require.NoError(t, err)
	assert.Equal(t, "final", summary)
	users := llm.userMessages()
	assert.Contains(t, users[len(users)-1], "piece\n\npiece")
	assert.NotContains(t, users[len(users)-1], "piece\n\npiece\n\npiece")
}

func TestSummarizer_MapReduceAllPiecesFail(t *testing.T) {
	llm := &mockLLMService{chatErr: errors.New("down")}
	s := NewSummarizer(llm, &mockSplitter{size: SummaryChunkSize})

	_, err := s.GenerateSummary(context.Background(), strings.Repeat("z", 20000))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailure)
}

func TestSummarizer_DirectFailure(t *testing.T) {
	llm := &mockLLMService{chatErr: errors.New("down")}
	s := NewSummarizer(llm, nil)

	_, err := s.GenerateSummary(context.Background(), "text")

	assert.ErrorIs(t, err, domain.ErrGenerationFailure)
}

func TestSummarizer_NilLLM(t *testing.T) {
	s := NewSummarizer(nil, nil)

	_, err := s.GenerateSummary(context.Background(), "text")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestSummarizer_CustomPrompts(t *testing.T) {
	llm := &mockLLMService{response: "ok"}
	s := NewSummarizer(llm, nil)
	s.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		driven.PromptSummaryFinal:  "Summarise: %s",
		driven.PromptSummarySystem: "system",
	}})

	_, err := s.GenerateSummary(context.Background(), "body")

	require.NoError(t, err)
	assert.Equal(t, "system", llm.calls[0][0].Content)
	assert.Equal(t, "Summarise: body", llm.calls[0][1].Content)
}

func TestLoadPrompt_FallsBackOnMissing(t *testing.T) {
	store := &mockPromptStore{prompts: map[string]string{}}

	assert.Equal(t, driven.DefaultPrompt(driven.PromptQASystem), loadPrompt(store, driven.PromptQASystem))
	assert.Equal(t, driven.DefaultPrompt(driven.PromptQAUser), loadPrompt(nil, driven.PromptQAUser))
}
