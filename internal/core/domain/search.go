package domain

// SearchResult is a chunk returned by similarity search, enriched with
// fields from its parent document.
type SearchResult struct {
	// ChunkID is the identifier of the matched chunk.
	ChunkID string

	// DocumentID is the parent document identifier.
	DocumentID string

	// Content is the chunk text.
	Content string

	// PageNumber is the page the chunk came from.
	PageNumber int

	// ChunkIndex is the chunk position within the document.
	ChunkIndex int

	// ElementType classifies the chunk.
	ElementType string

	// Filename is the parent document's filename.
	Filename string

	// DocType is the parent document's type.
	DocType DocType

	// Summary is the parent summary. Only set when requested.
	Summary string

	// Distance is the vector distance. Lower is more relevant.
	Distance float64
}

// Source attributes an answer to a file and page.
type Source struct {
	File string `json:"file" yaml:"file"`
	Page int    `json:"page" yaml:"page"`
}

// Answer is the result of a question-answering call.
// Generation failures are reported through Error, not as a Go error.
type Answer struct {
	Text    string   `json:"answer" yaml:"answer"`
	Sources []Source `json:"sources" yaml:"sources"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Stats holds aggregate store counts.
type Stats struct {
	TotalDocuments  int             `json:"total_documents" yaml:"total_documents"`
	TotalChunks     int             `json:"total_chunks" yaml:"total_chunks"`
	AvgChunksPerDoc float64         `json:"avg_chunks_per_doc" yaml:"avg_chunks_per_doc"`
	DocumentsByType map[DocType]int `json:"documents_by_type,omitempty" yaml:"documents_by_type,omitempty"`
}

// NewStats builds Stats, guarding the average against an empty store.
func NewStats(documents, chunks int) Stats {
	s := Stats{TotalDocuments: documents, TotalChunks: chunks}
	if documents > 0 {
		s.AvgChunksPerDoc = float64(chunks) / float64(documents)
	}
	return s
}
