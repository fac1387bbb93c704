package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// mockProcessor is a test processor that returns predefined fragments.
type mockProcessor struct {
	name      string
	fragments []domain.Fragment
	err       error
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(
	_ context.Context, _ *domain.LoadedDocument, fragments []domain.Fragment,
) ([]domain.Fragment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.fragments != nil {
		return m.fragments, nil
	}
	return fragments, nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.Len() != 0 {
		t.Errorf("expected 0 processors, got %d", p.Len())
	}
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	if p.Len() != 1 {
		t.Errorf("expected 1 processor, got %d", p.Len())
	}
}

func TestPipeline_Process_NilDocument(t *testing.T) {
	p := NewPipeline()

	_, err := p.Process(context.Background(), nil)
	if err == nil {
		t.Error("expected error for nil document")
	}
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	p := NewPipeline()
	doc := &domain.LoadedDocument{
		Fragments: []domain.Fragment{{Text: "unchanged"}},
	}

	fragments, err := p.Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) != 1 || fragments[0].Text != "unchanged" {
		t.Errorf("expected fragments to pass through, got %v", fragments)
	}
}

func TestPipeline_Process_MultipleProcessors(t *testing.T) {
	second := []domain.Fragment{
		{Text: "modified"},
		{Text: "added"},
	}

	p := NewPipeline(
		&mockProcessor{name: "first", fragments: []domain.Fragment{{Text: "first"}}},
		&mockProcessor{name: "second", fragments: second},
	)

	fragments, err := p.Process(context.Background(), &domain.LoadedDocument{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fragments) != len(second) {
		t.Errorf("expected %d fragments, got %d", len(second), len(fragments))
	}
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	expectedErr := errors.New("processor failed")

	p := NewPipeline(&mockProcessor{
		name: "failing",
		err:  expectedErr,
	})

	_, err := p.Process(context.Background(), &domain.LoadedDocument{})
	if err == nil {
		t.Error("expected error from failing processor")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected wrapped error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "processor failing") {
		t.Errorf("expected processor name in error, got: %v", err)
	}
}

func TestDefaultPipeline(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Chunking.ChunkSize = 20
	settings.Chunking.ChunkOverlap = 0

	p, err := DefaultPipeline(settings)
	if err != nil {
		t.Fatalf("DefaultPipeline failed: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("expected 3 processors, got %d", p.Len())
	}

	doc := &domain.LoadedDocument{
		Fragments: []domain.Fragment{
			{Text: "  padded   text ", PageNumber: 1},
			{Text: "noise", ElementType: domain.ElementOCRText, Confidence: 0.2, PageNumber: 1},
			{Text: "one two three four five six seven", PageNumber: 2},
			{Text: "   ", PageNumber: 2},
		},
	}

	fragments, err := p.Process(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fragments[0].Text != "padded text" {
		t.Errorf("expected normalised text, got %q", fragments[0].Text)
	}
	for _, f := range fragments {
		if f.Text == "noise" {
			t.Error("low-confidence OCR fragment should be dropped")
		}
		if len(f.Text) > 20 {
			t.Errorf("fragment exceeds chunk size: %q", f.Text)
		}
	}
	if len(fragments) < 3 {
		t.Errorf("expected long fragment to be split, got %d fragments", len(fragments))
	}
}

func TestPipeline_Run_CapturesTextBeforeSplitting(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Chunking.ChunkSize = 20
	settings.Chunking.ChunkOverlap = 5

	p, err := DefaultPipeline(settings)
	if err != nil {
		t.Fatalf("DefaultPipeline failed: %v", err)
	}

	doc := &domain.LoadedDocument{
		Fragments: []domain.Fragment{
			{Text: "  short  ", PageNumber: 1},
			{Text: "one two three four five six seven eight", PageNumber: 1},
		},
	}

	text, fragments, err := p.Run(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "short\n\none two three four five six seven eight"
	if text != want {
		t.Errorf("expected pre-split text %q, got %q", want, text)
	}
	if len(fragments) < 3 {
		t.Errorf("expected the long fragment to be split, got %d fragments", len(fragments))
	}
}

func TestPipeline_Run_WithoutSplitter(t *testing.T) {
	p := NewPipeline()
	doc := &domain.LoadedDocument{
		Fragments: []domain.Fragment{{Text: "a"}, {Text: "b"}},
	}

	text, fragments, err := p.Run(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "a\n\nb" {
		t.Errorf("expected joined fragments, got %q", text)
	}
	if len(fragments) != 2 {
		t.Errorf("expected 2 fragments, got %d", len(fragments))
	}
}

func TestDefaultPipeline_InvalidConfidence(t *testing.T) {
	for _, conf := range []float64{-0.1, 1, 1.5} {
		settings := domain.DefaultAppSettings()
		settings.OCR.MinConfidence = conf

		_, err := DefaultPipeline(settings)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("min_confidence %v: expected ErrInvalidInput, got %v", conf, err)
		}
	}
}
