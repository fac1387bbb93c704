package domain

// IngestStatus is the terminal outcome of ingesting one file.
type IngestStatus string

// Ingestion outcomes.
const (
	IngestSuccess IngestStatus = "success"
	IngestSkipped IngestStatus = "skipped"
	IngestError   IngestStatus = "error"
)

// SkipReasonDuplicate is reported when the content hash is already stored.
const SkipReasonDuplicate = "duplicate"

// IngestResult describes the outcome of ingesting one file.
// Only the fields relevant to Status are set.
type IngestResult struct {
	Status   IngestStatus `json:"status" yaml:"status"`
	Document string       `json:"document,omitempty" yaml:"document,omitempty"`

	// Success fields.
	DocumentID     string `json:"document_id,omitempty" yaml:"document_id,omitempty"`
	ChunkProcessed int    `json:"chunk_processed,omitempty" yaml:"chunk_processed,omitempty"`
	TotalPages     int    `json:"total_pages,omitempty" yaml:"total_pages,omitempty"`
	ContentHash    string `json:"content_hash,omitempty" yaml:"content_hash,omitempty"`
	FailedChunks   int    `json:"failed_chunks,omitempty" yaml:"failed_chunks,omitempty"`

	// Skipped fields.
	Reason           string `json:"reason,omitempty" yaml:"reason,omitempty"`
	ExistingID       string `json:"existing_uuid,omitempty" yaml:"existing_uuid,omitempty"`
	ExistingFilename string `json:"existing_filename,omitempty" yaml:"existing_filename,omitempty"`

	// Error fields.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// DirectoryResult partitions the results of a directory ingestion.
type DirectoryResult struct {
	Processed []IngestResult `json:"processed" yaml:"processed"`
	Skipped   []IngestResult `json:"skipped" yaml:"skipped"`
	Errors    []IngestResult `json:"errors" yaml:"errors"`
}

// Add files a result into the matching partition.
func (r *DirectoryResult) Add(res IngestResult) {
	switch res.Status {
	case IngestSuccess:
		r.Processed = append(r.Processed, res)
	case IngestSkipped:
		r.Skipped = append(r.Skipped, res)
	default:
		r.Errors = append(r.Errors, res)
	}
}

// Total returns the number of files seen.
func (r *DirectoryResult) Total() int {
	return len(r.Processed) + len(r.Skipped) + len(r.Errors)
}
