// Package markdown extracts Markdown files into title, list, table and
// paragraph fragments with the markup stripped.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/normalisers"
	"github.com/custodia-labs/documind/internal/normalisers/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Markdown files.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// DocType returns the document type this extractor produces.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypeText
}

// Extensions returns the file extensions handled.
func (e *Extractor) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Extract reads the file and converts its blocks to fragments.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Fragment, error) {
	content, err := plaintext.ReadText(path)
	if err != nil {
		return nil, err
	}
	return extractBlocks(content), nil
}

// Pre-compiled regular expressions for Markdown parsing.
var (
	codeBlock     = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode    = regexp.MustCompile("`[^`]+`")
	images        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquote    = regexp.MustCompile(`(?m)^>\s*`)
	hr            = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedList  = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	tableDivider  = regexp.MustCompile(`^\|?\s*:?-{3,}`)
)

// blockBuilder accumulates consecutive lines of one kind.
type blockBuilder struct {
	fragments []domain.Fragment
	page      int
	kind      string
	lines     []string
}

func (b *blockBuilder) add(kind, line string) {
	if b.kind != kind {
		b.flush()
		b.kind = kind
	}
	b.lines = append(b.lines, line)
}

func (b *blockBuilder) emit(kind, text string) {
	b.flush()
	b.push(kind, text)
}

func (b *blockBuilder) flush() {
	if len(b.lines) == 0 {
		return
	}
	var text string
	if b.kind == domain.ElementTable {
		text = tableText(b.lines)
	} else {
		text = stripMarkdown(strings.Join(b.lines, "\n"))
	}
	b.push(b.kind, text)
	b.lines = nil
}

func (b *blockBuilder) push(kind, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.fragments = append(b.fragments, domain.Fragment{
		Text:        text,
		PageNumber:  b.page,
		ElementType: kind,
	})
}

// extractBlocks walks paragraphs line by line. Headings become Title
// fragments, list items ListItem fragments and pipe tables Table fragments;
// everything else is NarrativeText. Fenced code is dropped.
func extractBlocks(content string) []domain.Fragment {
	content = codeBlock.ReplaceAllString(content, "")

	b := &blockBuilder{}
	for i, page := range normalisers.SplitPages(content) {
		b.page = i + 1
		for _, para := range normalisers.Paragraphs(page) {
			for _, line := range strings.Split(para, "\n") {
				switch {
				case headings.MatchString(line):
					b.emit(domain.ElementTitle, stripMarkdown(line))
				case listMarkers.MatchString(line), numberedList.MatchString(line):
					b.emit(domain.ElementListItem, stripMarkdown(line))
				case strings.HasPrefix(strings.TrimSpace(line), "|"):
					b.add(domain.ElementTable, line)
				default:
					b.add(domain.ElementNarrativeText, line)
				}
			}
			b.flush()
		}
	}
	return b.fragments
}

// tableText renders pipe-table rows as cells separated by " | ".
func tableText(lines []string) string {
	var rows []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if tableDivider.MatchString(line) {
			continue
		}
		cells := strings.Split(strings.Trim(line, "|"), "|")
		for i := range cells {
			cells[i] = stripMarkdown(strings.TrimSpace(cells[i]))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

// stripMarkdown removes common markdown formatting for plain text content.
// This is a simplified implementation that handles common cases.
func stripMarkdown(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")

	// Convert links [text](url) to just text
	content = links.ReplaceAllString(content, "$1")

	content = headings.ReplaceAllString(content, "")

	// Remove bold/italic markers
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")
	content = strings.ReplaceAll(content, "_", " ")

	content = blockquote.ReplaceAllString(content, "")
	content = hr.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
