package html

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/normalisers/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles HTML documents.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// DocType returns the document type this extractor produces.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypeText
}

// Extensions returns the file extensions handled.
func (e *Extractor) Extensions() []string {
	return []string{".html", ".htm"}
}

// Extract converts the page to one fragment per text line.
// The <title> becomes the leading Title fragment.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Fragment, error) {
	content, err := plaintext.ReadText(path)
	if err != nil {
		return nil, err
	}
	return extractFragments(content), nil
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	titleTag          = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	headingTag        = regexp.MustCompile(`(?is)<h[1-6][^>]*>(.*?)</h[1-6]>`)
	listItemTag       = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	cellEnd           = regexp.MustCompile(`(?i)</t[dh]>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	hrTags            = regexp.MustCompile(`(?i)<hr\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
	multiNewlines     = regexp.MustCompile(`\n{3,}`)
)

// extractFragments classifies each visible line of the page.
func extractFragments(content string) []domain.Fragment {
	var fragments []domain.Fragment
	add := func(text, kind string) {
		fragments = append(fragments, domain.Fragment{Text: text, PageNumber: 1, ElementType: kind})
	}

	if title := extractHTMLTitle(content); title != "" {
		add(title, domain.ElementTitle)
	}

	titles := innerTexts(headingTag, content)
	items := innerTexts(listItemTag, content)

	for _, line := range strings.Split(stripHTML(content), "\n") {
		switch {
		case line == "":
		case titles[line]:
			add(line, domain.ElementTitle)
		case items[line]:
			add(line, domain.ElementListItem)
		default:
			add(line, domain.ElementNarrativeText)
		}
	}
	return fragments
}

// innerTexts returns the stripped inner text of every match of re.
func innerTexts(re *regexp.Regexp, content string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		if text := stripHTML(m[1]); text != "" && !strings.Contains(text, "\n") {
			out[text] = true
		}
	}
	return out
}

// extractHTMLTitle returns the decoded <title> text, or "".
func extractHTMLTitle(content string) string {
	matches := titleTag.FindStringSubmatch(content)
	if len(matches) > 1 {
		return strings.TrimSpace(html.UnescapeString(matches[1]))
	}
	return ""
}

// stripHTML removes HTML tags and extracts readable text content.
func stripHTML(content string) string {
	// Remove script, style, noscript, head, and svg tags entirely
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = noscriptTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")

	content = htmlComments.ReplaceAllString(content, "")

	// Block elements start and end on their own line
	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = cellEnd.ReplaceAllString(content, " ")

	content = brTags.ReplaceAllString(content, "\n")
	content = hrTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	// Collapse multiple spaces (but preserve newlines)
	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	// Trim each line and remove empty lines
	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
