package loader

import (
	"github.com/custodia-labs/documind/internal/core/domain"
	"github.com/custodia-labs/documind/internal/normalisers/docx"
	"github.com/custodia-labs/documind/internal/normalisers/html"
	"github.com/custodia-labs/documind/internal/normalisers/image"
	"github.com/custodia-labs/documind/internal/normalisers/markdown"
	"github.com/custodia-labs/documind/internal/normalisers/pdf"
	"github.com/custodia-labs/documind/internal/normalisers/plaintext"
	"github.com/custodia-labs/documind/internal/postprocessors"
)

// NewDefault creates a loader with every built-in extractor and the
// standard processing pipeline configured from settings.
func NewDefault(settings domain.AppSettings) (*Loader, error) {
	pipeline, err := postprocessors.DefaultPipeline(settings)
	if err != nil {
		return nil, err
	}

	l := New(pipeline)
	l.Register(plaintext.New())
	l.Register(markdown.New())
	l.Register(html.New())
	l.Register(docx.New())
	l.Register(pdf.New())
	l.Register(image.New(settings.OCR.Languages...))
	return l, nil
}
