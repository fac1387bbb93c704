package normalisers

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/documind/internal/core/domain"
)

// PageBreak separates pages in pdftotext output and in plain text files.
const PageBreak = "\f"

var blankLines = regexp.MustCompile(`\n[ \t\r]*\n`)

// SplitPages splits text on form feeds. A trailing empty page is dropped.
func SplitPages(text string) []string {
	pages := strings.Split(text, PageBreak)
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// Paragraphs splits text on blank lines and drops empty paragraphs.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range blankLines.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TextFragments turns plain text into NarrativeText fragments, one per
// paragraph, numbering pages from 1 at every form feed.
func TextFragments(text string) []domain.Fragment {
	var fragments []domain.Fragment
	for i, page := range SplitPages(text) {
		for _, p := range Paragraphs(page) {
			fragments = append(fragments, domain.Fragment{
				Text:        p,
				PageNumber:  i + 1,
				ElementType: domain.ElementNarrativeText,
			})
		}
	}
	return fragments
}
