package normalisers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/domain"
)

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"no form feed", "one page", 1},
		{"two pages", "first\fsecond", 2},
		{"trailing form feed", "first\fsecond\f", 2},
		{"empty middle page", "first\f\fthird", 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, SplitPages(tc.in), tc.want)
		})
	}
}

func TestParagraphs(t *testing.T) {
	got := Paragraphs("first line\nsame paragraph\n\n  \n\nsecond\r\n\r\nthird\n")

	assert.Equal(t, []string{"first line\nsame paragraph", "second", "third"}, got)
	assert.Empty(t, Paragraphs(" \n\n\t"))
}

func TestTextFragments(t *testing.T) {
	frags := TextFragments("Intro\n\nBody text\fPage two\f\fPage four")

	require.Len(t, frags, 4)
	assert.Equal(t, domain.Fragment{Text: "Intro", PageNumber: 1, ElementType: domain.ElementNarrativeText}, frags[0])
	assert.Equal(t, 1, frags[1].PageNumber)
	assert.Equal(t, "Page two", frags[2].Text)
	assert.Equal(t, 2, frags[2].PageNumber)
	assert.Equal(t, 4, frags[3].PageNumber)
}
