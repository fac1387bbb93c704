package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// For lookups this is a valid absence, not an operational failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no extractor can handle.
	ErrUnsupportedType = errors.New("unsupported type")

	// Ingestion Errors.

	// ErrLoadFailure indicates a source file could not be read or parsed.
	ErrLoadFailure = errors.New("load failure")

	// ErrDuplicateDocument indicates a document with the same content hash
	// is already stored.
	ErrDuplicateDocument = errors.New("duplicate document")

	// ErrSizeMismatch indicates the number of chunks and vectors differ.
	// It is raised before any store access.
	ErrSizeMismatch = errors.New("chunk/vector size mismatch")

	// Store Errors.

	// ErrStoreConnection indicates the vector store could not be opened.
	ErrStoreConnection = errors.New("store connection failure")

	// ErrStoreOperation indicates a store call failed after connecting.
	ErrStoreOperation = errors.New("store operation failure")

	// AI Errors.

	// ErrGenerationFailure indicates an LLM or summarisation call failed.
	ErrGenerationFailure = errors.New("generation failure")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)

// BatchError reports a partially failed chunk insert.
// Chunks that were written successfully are not rolled back.
type BatchError struct {
	// Failed is the number of chunks that could not be written.
	Failed int

	// Total is the number of chunks in the batch.
	Total int

	// Cause is the first underlying failure.
	Cause error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d of %d chunks failed to insert: %v", e.Failed, e.Total, e.Cause)
	}
	return fmt.Sprintf("%d of %d chunks failed to insert", e.Failed, e.Total)
}

// Unwrap allows errors.Is to match both ErrStoreOperation and the cause.
func (e *BatchError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrStoreOperation, e.Cause}
	}
	return []error{ErrStoreOperation}
}
