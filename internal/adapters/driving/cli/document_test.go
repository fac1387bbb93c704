package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/documind/internal/core/domain"
)

func TestDocumentList(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("documents", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "doc-1")
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "Total: 1 documents")
}

func TestDocumentList_Empty(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.documents.docs = nil

	out, err := execute("docs", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents ingested yet.")
}

func TestDocumentList_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("documents", "list", "--format", "json")
	require.NoError(t, err)

	var views []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "doc-1", views[0]["id"])
}

func TestDocumentShow(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("documents", "show", "doc-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Document: doc-1")
	assert.Contains(t, out, "File:     report.pdf")
	assert.Contains(t, out, "Size:     2.0 kB")
	assert.Contains(t, out, "Added:    2024-03-01 09:30:00")
	assert.Contains(t, out, "Summary:\n    Annual report.")
	assert.NotContains(t, out, "[0] page")
}

func TestDocumentShow_Chunks(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.documents.chunks = []domain.DocumentChunk{
		{ID: "c-0", DocumentID: "doc-1", Content: "Revenue was 10M.", PageNumber: 2, ChunkIndex: 0, ElementType: domain.ElementNarrativeText},
	}

	out, err := execute("documents", "show", "doc-1", "--chunks")

	require.NoError(t, err)
	assert.Contains(t, out, "[0] page 2, NarrativeText\n    Revenue was 10M.")
}

func TestDocumentShow_NotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("documents", "show", "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentDelete(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("documents", "delete", "doc-1")

	require.NoError(t, err)
	assert.Equal(t, "doc-1", ts.documents.deleted)
	assert.Contains(t, out, "Document doc-1 deleted.")
}

func TestDocumentDelete_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.documents.err = errors.New("locked")

	_, err := execute("documents", "delete", "doc-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}

func TestDocumentLookup_Found(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.documents.ref = &domain.DocumentRef{ID: "doc-1", Filename: "report.pdf", Summary: "Annual report.", AddedAt: testAddedAt}

	out, err := execute("documents", "lookup", "/tmp/copy.pdf")

	require.NoError(t, err)
	assert.Contains(t, out, "Stored as report.pdf (id=doc-1)")
	assert.Contains(t, out, "  Annual report.")
}

func TestDocumentLookup_NotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("documents", "lookup", "/tmp/new.pdf")

	require.NoError(t, err)
	assert.Contains(t, out, "No stored document has the same content as /tmp/new.pdf.")
}

func TestDocumentLookup_LoadFailure(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.documents.err = domain.ErrLoadFailure

	_, err := execute("documents", "lookup", "/tmp/broken.pdf")

	assert.ErrorIs(t, err, domain.ErrLoadFailure)
}
