package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// MockQAService implements driving.QAService for testing.
type MockQAService struct {
	AnswerFunc func(ctx context.Context, question string) domain.Answer
}

func (m *MockQAService) Answer(ctx context.Context, question string) domain.Answer {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, question)
	}
	return domain.Answer{Text: "ok", Sources: []domain.Source{}}
}

// MockIngestService implements driving.IngestService for testing.
type MockIngestService struct {
	StatsFunc func(ctx context.Context) (domain.Stats, error)
}

func (m *MockIngestService) ProcessFile(_ context.Context, _ string, _ bool) domain.IngestResult {
	return domain.IngestResult{}
}

func (m *MockIngestService) ProcessDirectory(_ context.Context, _ string, _ bool) (*domain.DirectoryResult, error) {
	return &domain.DirectoryResult{}, nil
}

func (m *MockIngestService) Stats(ctx context.Context) (domain.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return domain.Stats{}, nil
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingQAService)
	assert.ErrorIs(t, (&Ports{Ingest: &MockIngestService{}}).Validate(), ErrMissingQAService)
	assert.NoError(t, (&Ports{QA: &MockQAService{}}).Validate())
	assert.NoError(t, (&Ports{QA: &MockQAService{}, Ingest: &MockIngestService{}}).Validate())
}
