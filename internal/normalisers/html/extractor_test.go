package html

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

func TestExtractor_Metadata(t *testing.T) {
	e := New()
	assert.Equal(t, domain.DocTypeText, e.DocType())
	assert.Equal(t, []string{".html", ".htm"}, e.Extensions())
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple paragraph",
			input:    "<p>Hello World</p>",
			expected: "Hello World",
		},
		{
			name:     "nested tags",
			input:    "<div><p><strong>Bold</strong> text</p></div>",
			expected: "Bold text",
		},
		{
			name:     "script removed",
			input:    "<p>Before</p><script>alert('evil');</script><p>After</p>",
			expected: "Before\nAfter",
		},
		{
			name:     "style removed",
			input:    "<style>.foo { color: red; }</style><p>Content</p>",
			expected: "Content",
		},
		{
			name:     "head removed",
			input:    "<head><meta charset='utf-8'><title>Title</title></head><body>Content</body>",
			expected: "Content",
		},
		{
			name:     "br to newline",
			input:    "Line 1<br>Line 2<br/>Line 3",
			expected: "Line 1\nLine 2\nLine 3",
		},
		{
			name:     "HTML entities decoded",
			input:    "<p>&lt;tag&gt; &amp; &quot;quotes&quot;</p>",
			expected: "<tag> & \"quotes\"",
		},
		{
			name:     "comments removed",
			input:    "<p>Before</p><!-- comment --><p>After</p>",
			expected: "Before\nAfter",
		},
		{
			name:     "images removed",
			input:    `<p>See <img src="image.png" alt="Image"> here</p>`,
			expected: "See here",
		},
		{
			name:     "table cells separated",
			input:    "<table><tr><td>Cell 1</td><td>Cell 2</td></tr></table>",
			expected: "Cell 1 Cell 2",
		},
		{
			name:     "svg removed",
			input:    `<p>Before</p><svg width="100"><circle cx="50"/></svg><p>After</p>`,
			expected: "Before\nAfter",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := stripHTML(tc.input)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestExtractFragments(t *testing.T) {
	page := `<html><head><title>Q3 &amp; Q4 Report</title></head>
<body>
<h1>Overview</h1>
<p>Revenue <b>grew</b> strongly.</p>
<ul><li>North</li><li>South</li></ul>
<script>var x = 1;</script>
</body></html>`

	frags := extractFragments(page)

	require.Len(t, frags, 5)
	assert.Equal(t, domain.Fragment{Text: "Q3 & Q4 Report", PageNumber: 1, ElementType: domain.ElementTitle}, frags[0])
	assert.Equal(t, domain.Fragment{Text: "Overview", PageNumber: 1, ElementType: domain.ElementTitle}, frags[1])
	assert.Equal(t, domain.Fragment{Text: "Revenue grew strongly.", PageNumber: 1, ElementType: domain.ElementNarrativeText}, frags[2])
	assert.Equal(t, domain.ElementListItem, frags[3].ElementType)
	assert.Equal(t, "South", frags[4].Text)
}

func TestExtractFragments_NoTitle(t *testing.T) {
	frags := extractFragments("<p>Only body</p>")

	require.Len(t, frags, 1)
	assert.Equal(t, domain.ElementNarrativeText, frags[0].ElementType)
}

func TestExtract_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>Hello</p>"), 0o600))

	frags, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, "Hello", frags[0].Text)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
