package domain

import "time"

// DocType classifies a source file.
type DocType string

// Supported document types.
const (
	DocTypePDF     DocType = "pdf"
	DocTypeDOCX    DocType = "docx"
	DocTypeImage   DocType = "image"
	DocTypeText    DocType = "text"
	DocTypeUnknown DocType = "unknown"
)

// IsValid returns true if the document type is recognised.
func (t DocType) IsValid() bool {
	switch t {
	case DocTypePDF, DocTypeDOCX, DocTypeImage, DocTypeText, DocTypeUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocType) String() string {
	return string(t)
}

// Element types assigned to fragments by the extractors.
const (
	ElementNarrativeText = "NarrativeText"
	ElementTitle         = "Title"
	ElementTable         = "Table"
	ElementListItem      = "ListItem"
	ElementOCRText       = "OCR_Text"
	ElementUncategorized = "UncategorizedText"
)

// DocumentObject is the stored parent record for an ingested file.
// At most one DocumentObject exists per distinct ContentHash.
// Records are never mutated in place; reprocessing deletes and recreates.
type DocumentObject struct {
	// ID is the unique identifier, assigned by the store.
	ID string

	// Filename is the base name of the source file.
	Filename string

	// DocType is the detected file type.
	DocType DocType

	// Summary is the generated summary. May be empty.
	Summary string

	// ContentHash is the digest of the full extracted text.
	ContentHash string

	// FileSize is the size of the source file in bytes.
	FileSize int64

	// TotalPages is the highest page number seen in the document.
	TotalPages int

	// TotalChunks is the number of chunks linked to this record.
	TotalChunks int

	// AddedAt is when the record was created.
	AddedAt time.Time

	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time
}

// DocumentChunk is a stored fragment of a document with its embedding.
// Every chunk references exactly one existing DocumentObject.
type DocumentChunk struct {
	// ID is the unique identifier, assigned by the store.
	ID string

	// DocumentID is the non-owning reference to the parent DocumentObject.
	DocumentID string

	// Content is the fragment text, without any embedding prefix.
	Content string

	// PageNumber is the 1-based page the fragment came from.
	PageNumber int

	// ChunkIndex is the position within the document.
	ChunkIndex int

	// ElementType classifies the source fragment (NarrativeText, Table, OCR_Text).
	ElementType string

	// EntitiesJSON holds the serialised ExtractionResult, if NER ran.
	EntitiesJSON string

	// Embedding is the passage vector.
	Embedding []float32
}

// DocumentRef is the summary record returned by a content-hash lookup.
type DocumentRef struct {
	// ID is the parent record identifier.
	ID string

	// Filename is the stored filename.
	Filename string

	// Summary is the stored summary.
	Summary string

	// AddedAt is when the record was created.
	AddedAt time.Time
}
