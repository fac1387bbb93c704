package whitespace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/domain"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"hello", "hello"},
		{"  hello   world  ", "hello world"},
		{"line\none\n\nline two", "line one line two"},
		{"tab\tand nbsp", "tab and nbsp"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Clean(tt.in), "input %q", tt.in)
	}
}

func TestProcessor_Process(t *testing.T) {
	p := New()
	assert.Equal(t, "whitespace", p.Name())

	in := []domain.Fragment{
		{Text: "  a  b ", PageNumber: 2, ElementType: domain.ElementTitle},
		{Text: "\n\t ", PageNumber: 2},
		{Text: "c", PageNumber: 0},
	}

	out, err := p.Process(context.Background(), &domain.LoadedDocument{}, in)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "a b", out[0].Text)
	assert.Equal(t, domain.ElementTitle, out[0].ElementType)
	assert.Equal(t, "c", out[1].Text)
	assert.Equal(t, domain.ElementUncategorized, out[1].ElementType)
	assert.Equal(t, 1, out[1].PageNumber)
}

func TestClean_ComposesToNFC(t *testing.T) {
	// "e" followed by a combining acute accent.
	decomposed := "cafe\u0301"

	assert.Equal(t, "caf\u00e9", Clean(decomposed))
}
