// Package docx extracts Word documents by reading word/document.xml.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// DocType returns the document type this extractor produces.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypeDOCX
}

// Extensions returns the file extensions handled.
func (e *Extractor) Extensions() []string {
	return []string{".docx"}
}

// Extract opens the archive and walks the document body in order.
// Paragraphs become NarrativeText, Title or ListItem fragments and tables
// become one Table fragment each. Explicit page breaks advance the page.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Fragment, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer reader.Close()

	content, err := readDocumentXML(&reader.Reader)
	if err != nil {
		return nil, err
	}
	return parseDocumentXML(content)
}

// readDocumentXML returns the raw bytes of word/document.xml.
func readDocumentXML(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("word/document.xml not found")
}

// documentXML represents the structure of word/document.xml.
// Body children are kept in order so tables stay between their paragraphs.
type documentXML struct {
	Body struct {
		Elements []bodyElement `xml:",any"`
	} `xml:"body"`
}

// bodyElement is either a paragraph (w:p) or a table (w:tbl).
type bodyElement struct {
	XMLName xml.Name
	paragraph
	Rows []tableRow `xml:"tr"`
}

type paragraph struct {
	Props    *paragraphProps `xml:"pPr"`
	Children []inline        `xml:",any"`
}

type paragraphProps struct {
	Style *struct {
		Val string `xml:"val,attr"`
	} `xml:"pStyle"`
	Numbering       *struct{} `xml:"numPr"`
	PageBreakBefore *struct{} `xml:"pageBreakBefore"`
}

// inline is a run (w:r) or a hyperlink (w:hyperlink) wrapping runs.
type inline struct {
	XMLName xml.Name
	Text    []textElement  `xml:"t"`
	Tabs    []struct{}     `xml:"tab"`
	Breaks  []breakElement `xml:"br"`
	Runs    []run          `xml:"r"`
}

type run struct {
	Text   []textElement  `xml:"t"`
	Breaks []breakElement `xml:"br"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

type breakElement struct {
	Type string `xml:"type,attr"`
}

type tableRow struct {
	Cells []struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"tc"`
}

// parseDocumentXML converts the document body to fragments.
func parseDocumentXML(content []byte) ([]domain.Fragment, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse document.xml: %w", err)
	}

	var fragments []domain.Fragment
	page := 1
	for _, el := range doc.Body.Elements {
		switch el.XMLName.Local {
		case "p":
			if el.Props != nil && el.Props.PageBreakBefore != nil {
				page++
			}
			text, breaks := el.paragraph.text()
			if text != "" {
				fragments = append(fragments, domain.Fragment{
					Text:        text,
					PageNumber:  page,
					ElementType: el.paragraph.elementType(),
				})
			}
			page += breaks
		case "tbl":
			if text := tableText(el.Rows); text != "" {
				fragments = append(fragments, domain.Fragment{
					Text:        text,
					PageNumber:  page,
					ElementType: domain.ElementTable,
				})
			}
		}
	}
	return fragments, nil
}

// text returns the paragraph text and the number of page breaks inside it.
func (p paragraph) text() (string, int) {
	var b strings.Builder
	breaks := 0
	appendRun := func(texts []textElement, brs []breakElement) {
		for _, t := range texts {
			b.WriteString(t.Content)
		}
		for _, br := range brs {
			if br.Type == "page" {
				breaks++
			} else {
				b.WriteString("\n")
			}
		}
	}

	for _, child := range p.Children {
		switch child.XMLName.Local {
		case "r":
			if len(child.Tabs) > 0 {
				b.WriteString("\t")
			}
			appendRun(child.Text, child.Breaks)
		case "hyperlink", "ins", "smartTag":
			for _, r := range child.Runs {
				appendRun(r.Text, r.Breaks)
			}
		}
	}
	return strings.TrimSpace(b.String()), breaks
}

// elementType maps the paragraph style to a fragment element type.
func (p paragraph) elementType() string {
	if p.Props == nil {
		return domain.ElementNarrativeText
	}
	if p.Props.Style != nil {
		style := strings.ToLower(p.Props.Style.Val)
		if strings.HasPrefix(style, "heading") || style == "title" || style == "subtitle" {
			return domain.ElementTitle
		}
		if strings.HasPrefix(style, "listparagraph") {
			return domain.ElementListItem
		}
	}
	if p.Props.Numbering != nil {
		return domain.ElementListItem
	}
	return domain.ElementNarrativeText
}

// tableText renders rows on separate lines with cells separated by " | ".
func tableText(rows []tableRow) string {
	var lines []string
	for _, row := range rows {
		var cells []string
		for _, cell := range row.Cells {
			var parts []string
			for _, p := range cell.Paragraphs {
				if text, _ := p.text(); text != "" {
					parts = append(parts, text)
				}
			}
			cells = append(cells, strings.Join(parts, " "))
		}
		if line := strings.Join(cells, " | "); strings.Trim(line, " |") != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
