package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		p := New(WithChunkSize(500))
		if p.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", p.chunkSize)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		if p.overlap >= p.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", p.overlap)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := New()
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestProcessor_Splits(t *testing.T) {
	assert.True(t, New().Splits())
}

func TestProcessor_Process_PassThrough(t *testing.T) {
	p := New(WithChunkSize(100))
	in := []domain.Fragment{
		{Text: "short", PageNumber: 1, ElementType: domain.ElementTitle},
		{Text: "also short", PageNumber: 2, ElementType: domain.ElementNarrativeText},
	}

	out, err := p.Process(context.Background(), &domain.LoadedDocument{}, in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestProcessor_Process_SplitsOversized(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(0))
	long := strings.TrimSpace(strings.Repeat("sentence here. ", 20))
	in := []domain.Fragment{
		{Text: "intro", PageNumber: 1, ElementType: domain.ElementTitle},
		{Text: long, PageNumber: 3, ElementType: domain.ElementOCRText, Confidence: 0.8},
	}

	out, err := p.Process(context.Background(), &domain.LoadedDocument{}, in)
	require.NoError(t, err)
	require.Greater(t, len(out), 2)

	assert.Equal(t, "intro", out[0].Text)
	for _, f := range out[1:] {
		assert.Equal(t, 3, f.PageNumber)
		assert.Equal(t, domain.ElementOCRText, f.ElementType)
		assert.InDelta(t, 0.8, f.Confidence, 1e-9)
		assert.LessOrEqual(t, len(f.Text), 100)
	}
}

func TestProcessor_Process_Empty(t *testing.T) {
	p := New()
	out, err := p.Process(context.Background(), &domain.LoadedDocument{}, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
