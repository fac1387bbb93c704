// Package loader turns files on disk into LoadedDocuments.
//
// The loader picks an extractor by file extension, falling back to content
// sniffing for unknown extensions, and passes the raw fragments through the
// fragment processing pipeline (whitespace normalisation, OCR confidence
// filtering, splitting of oversized fragments).
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/core/ports/driven"
	"github.com/custodia-labs/documind/internal/logger"
	"github.com/custodia-labs/documind/internal/postprocessors"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// sniffLen is the number of leading bytes inspected for content sniffing.
const sniffLen = 512

// sniffedExtensions maps sniffed MIME types to the extension whose
// extractor handles them.
var sniffedExtensions = map[string]string{
	"application/pdf": ".pdf",
	"application/zip": ".docx",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"text/html":       ".html",
	"text/plain":      ".txt",
}

// Loader dispatches files to registered extractors.
type Loader struct {
	extractors map[string]driven.Extractor
	pipeline   *postprocessors.Pipeline
}

// New creates a loader with no extractors. A nil pipeline leaves the
// extracted fragments untouched.
func New(pipeline *postprocessors.Pipeline) *Loader {
	return &Loader{
		extractors: make(map[string]driven.Extractor),
		pipeline:   pipeline,
	}
}

// Register adds an extractor for all of its extensions.
// A later registration for the same extension replaces the earlier one.
func (l *Loader) Register(extractor driven.Extractor) {
	for _, ext := range extractor.Extensions() {
		l.extractors[strings.ToLower(ext)] = extractor
	}
}

// Extensions returns the registered extensions in sorted order.
func (l *Loader) Extensions() []string {
	exts := make([]string, 0, len(l.extractors))
	for ext := range l.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether an extractor is registered for the path's extension.
func (l *Loader) Supports(path string) bool {
	_, ok := l.extractors[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load extracts and normalises the file at path.
// Failures wrap domain.ErrLoadFailure; files no extractor accepts
// additionally wrap domain.ErrUnsupportedType.
func (l *Loader) Load(ctx context.Context, path string) (*domain.LoadedDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrLoadFailure, path)
	}

	extractor, err := l.resolve(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
	}
	logger.Debug("Loading %s as %s", filepath.Base(path), extractor.DocType())

	fragments, err := extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
	}

	doc := &domain.LoadedDocument{
		FilePath:  path,
		Filename:  filepath.Base(path),
		FileType:  extractor.DocType(),
		Fragments: fragments,
		FileSize:  info.Size(),
	}

	if l.pipeline != nil {
		text, processed, err := l.pipeline.Run(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
		}
		doc.Text = text
		doc.Fragments = processed
	}

	for _, f := range doc.Fragments {
		doc.Pages = max(doc.Pages, f.PageNumber)
	}

	if len(doc.Fragments) == 0 && doc.FileType == domain.DocTypeImage {
		logger.Warn("No text recognised in image %s", doc.Filename)
	}
	logger.Debug("Loaded %s: %d fragments, %d pages", doc.Filename, len(doc.Fragments), doc.Pages)
	return doc, nil
}

// resolve picks the extractor by extension, then by sniffed content.
func (l *Loader) resolve(path string) (driven.Extractor, error) {
	if e, ok := l.extractors[strings.ToLower(filepath.Ext(path))]; ok {
		return e, nil
	}

	mime, err := SniffMIME(path)
	if err != nil {
		return nil, err
	}
	if ext, ok := sniffedExtensions[mime]; ok {
		if e, ok := l.extractors[ext]; ok {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s (%s)", domain.ErrUnsupportedType, filepath.Base(path), mime)
}

// DetectType classifies a file by extension, falling back to its content.
func (l *Loader) DetectType(path string) domain.DocType {
	e, err := l.resolve(path)
	if err != nil {
		return domain.DocTypeUnknown
	}
	return e.DocType()
}

// SniffMIME returns the media type of the file's leading bytes without
// parameters, e.g. "text/plain" rather than "text/plain; charset=utf-8".
func SniffMIME(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}

	mime := http.DetectContentType(buf[:n])
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(mime), nil
}
