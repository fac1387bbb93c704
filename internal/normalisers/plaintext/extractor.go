// Package plaintext extracts text files into paragraph fragments.
package plaintext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/normalisers"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// DocType returns the document type this extractor produces.
func (e *Extractor) DocType() domain.DocType {
	return domain.DocTypeText
}

// Extensions returns the file extensions handled.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// Extract splits the file into paragraphs. Form feeds start a new page.
// Invalid UTF-8 sequences are replaced rather than rejected.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.Fragment, error) {
	content, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return normalisers.TextFragments(content), nil
}

// ReadText reads a file as UTF-8 text, stripping a byte order mark.
func ReadText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(content) {
		content = bytes.ToValidUTF8(content, []byte("�"))
	}
	return string(content), nil
}
