package domain

import "strings"

// FullTextSeparator joins fragment texts into a document's full text.
const FullTextSeparator = "\n\n"

// Fragment is a positioned piece of extracted text.
type Fragment struct {
	// Text is the whitespace-normalised fragment text.
	Text string

	// PageNumber is the 1-based page the fragment came from.
	PageNumber int

	// ElementType classifies the fragment.
	ElementType string

	// Confidence is the OCR confidence in [0,1]. Zero when not applicable.
	Confidence float64
}

// LoadedDocument is the transient result of loading a file.
// It is consumed within one ingestion call and never persisted.
type LoadedDocument struct {
	// FilePath is the path the document was loaded from.
	FilePath string

	// Filename is the base name of FilePath.
	Filename string

	// FileType is the detected document type.
	FileType DocType

	// Fragments are the extracted fragments in document order.
	Fragments []Fragment

	// Pages is the highest page number among the fragments.
	Pages int

	// FileSize is the size of the source file in bytes.
	FileSize int64

	// Text is the normalised text before fragments were split for
	// embedding. Empty when no pipeline ran.
	Text string
}

// FullText returns the document's normalised text. This is the text the
// content hash and the summary are computed over, so it does not depend on
// chunk settings. Without Text it joins the fragments by FullTextSeparator.
func (d *LoadedDocument) FullText() string {
	if d.Text != "" {
		return d.Text
	}
	texts := make([]string, len(d.Fragments))
	for i, f := range d.Fragments {
		texts[i] = f.Text
	}
	return strings.Join(texts, FullTextSeparator)
}

// LoadStats describes the fragments of a loaded document.
type LoadStats struct {
	TotalChunks     int            `json:"total_chunks" yaml:"total_chunks"`
	TotalPages      int            `json:"total_pages" yaml:"total_pages"`
	TotalCharacters int            `json:"total_characters" yaml:"total_characters"`
	ChunksByType    map[string]int `json:"chunks_by_type" yaml:"chunks_by_type"`
}

// Stats computes fragment statistics for the document.
func (d *LoadedDocument) Stats() LoadStats {
	stats := LoadStats{
		TotalChunks:  len(d.Fragments),
		ChunksByType: make(map[string]int),
	}
	for _, f := range d.Fragments {
		stats.TotalCharacters += len([]rune(f.Text))
		stats.ChunksByType[f.ElementType]++
		if f.PageNumber > stats.TotalPages {
			stats.TotalPages = f.PageNumber
		}
	}
	return stats
}
