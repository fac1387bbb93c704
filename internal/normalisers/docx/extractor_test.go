package docx

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
)

// createTestDOCX writes a minimal DOCX archive to a temp file.
// An empty documentXML omits word/document.xml.
func createTestDOCX(t *testing.T, documentXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)

	// Add [Content_Types].xml (required for valid DOCX)
	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return path
}

func wrapBody(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + body + `</w:body>
</w:document>`
}

func TestExtractor_Metadata(t *testing.T) {
	e := New()
	assert.Equal(t, domain.DocTypeDOCX, e.DocType())
	assert.Equal(t, []string{".docx"}, e.Extensions())
}

func TestExtract_Success(t *testing.T) {
	path := createTestDOCX(t, wrapBody(`<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`))

	frags, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, domain.Fragment{Text: "Hello World", PageNumber: 1, ElementType: domain.ElementNarrativeText}, frags[0])
}

func TestExtract_MultipleRuns(t *testing.T) {
	path := createTestDOCX(t, wrapBody(
		`<w:p><w:r><w:t xml:space="preserve">Hello </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>`))

	frags, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, "Hello World", frags[0].Text)
}

func TestExtract_StylesTablesAndPages(t *testing.T) {
	body := `
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Annual Report</w:t></w:r></w:p>
<w:p><w:r><w:t>Revenue grew.</w:t></w:r><w:r><w:br w:type="page"/></w:r></w:p>
<w:tbl>
  <w:tblPr/>
  <w:tr><w:tc><w:p><w:r><w:t>Region</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Sales</w:t></w:r></w:p></w:tc></w:tr>
  <w:tr><w:tc><w:p><w:r><w:t>North</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>10</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/></w:numPr></w:pPr><w:r><w:t>First point</w:t></w:r></w:p>
<w:p><w:pPr><w:pageBreakBefore/></w:pPr><w:hyperlink><w:r><w:t>Linked text</w:t></w:r></w:hyperlink></w:p>
<w:p></w:p>
<w:sectPr/>`
	path := createTestDOCX(t, wrapBody(body))

	frags, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, frags, 5)

	assert.Equal(t, domain.Fragment{Text: "Annual Report", PageNumber: 1, ElementType: domain.ElementTitle}, frags[0])
	assert.Equal(t, domain.Fragment{Text: "Revenue grew.", PageNumber: 1, ElementType: domain.ElementNarrativeText}, frags[1])
	assert.Equal(t, domain.Fragment{Text: "Region | Sales\nNorth | 10", PageNumber: 2, ElementType: domain.ElementTable}, frags[2])
	assert.Equal(t, domain.Fragment{Text: "First point", PageNumber: 2, ElementType: domain.ElementListItem}, frags[3])
	assert.Equal(t, domain.Fragment{Text: "Linked text", PageNumber: 3, ElementType: domain.ElementNarrativeText}, frags[4])
}

func TestExtract_EmptyDocument(t *testing.T) {
	path := createTestDOCX(t, wrapBody(""))

	frags, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Empty(t, frags)
}

func TestExtract_MissingDocumentXML(t *testing.T) {
	path := createTestDOCX(t, "")

	_, err := New().Extract(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtract_InvalidZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip file"), 0o600))

	_, err := New().Extract(context.Background(), path)

	assert.Error(t, err)
}

func TestParseDocumentXML_Malformed(t *testing.T) {
	_, err := parseDocumentXML([]byte("<w:document><w:body>"))

	assert.Error(t, err)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
