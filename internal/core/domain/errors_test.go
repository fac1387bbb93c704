package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrLoadFailure", ErrLoadFailure},
		{"ErrDuplicateDocument", ErrDuplicateDocument},
		{"ErrSizeMismatch", ErrSizeMismatch},
		{"ErrStoreConnection", ErrStoreConnection},
		{"ErrStoreOperation", ErrStoreOperation},
		{"ErrGenerationFailure", ErrGenerationFailure},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrDuplicateDocument))
}

// TestErrors_Wrapped tests wrapped sentinel matching
func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("create document: %w", ErrDuplicateDocument)
	assert.ErrorIs(t, err, ErrDuplicateDocument)
	assert.NotErrorIs(t, err, ErrNotFound)
}

// TestBatchError tests partial insert failure reporting
func TestBatchError(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("upsert: %w", &BatchError{Failed: 2, Total: 5, Cause: cause})

	assert.ErrorIs(t, err, ErrStoreOperation)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "2 of 5 chunks failed")

	var batchErr *BatchError
	assert.True(t, errors.As(err, &batchErr))
	assert.Equal(t, 2, batchErr.Failed)
}

// TestBatchError_NoCause tests message without a cause
func TestBatchError_NoCause(t *testing.T) {
	err := &BatchError{Failed: 1, Total: 1}
	assert.Equal(t, "1 of 1 chunks failed to insert", err.Error())
	assert.ErrorIs(t, err, ErrStoreOperation)
}
