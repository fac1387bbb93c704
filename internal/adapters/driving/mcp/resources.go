package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/documind/internal/core/domain"
)

const uriScheme = "documind://"

// documentInfo is the JSON shape of one entry in the document list.
type documentInfo struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	DocType     string    `json:"doc_type"`
	Summary     string    `json:"summary,omitempty"`
	TotalPages  int       `json:"total_pages"`
	TotalChunks int       `json:"total_chunks"`
	AddedAt     time.Time `json:"added_at"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "All ingested documents with their summaries",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Stored chunks of one document, in order, with page markers",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleDocumentsResource lists every stored document.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	infos := []documentInfo{}

	if s.ports.Document != nil {
		docs, err := s.ports.Document.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing documents: %w", err)
		}
		for i := range docs {
			infos = append(infos, documentInfo{
				ID:          docs[i].ID,
				Filename:    docs[i].Filename,
				DocType:     string(docs[i].DocType),
				Summary:     docs[i].Summary,
				TotalPages:  docs[i].TotalPages,
				TotalChunks: docs[i].TotalChunks,
				AddedAt:     docs[i].AddedAt,
			})
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns a document's chunks as text.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	chunks, err := s.ports.Document.Chunks(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document chunks: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     renderChunks(chunks),
		}},
	}, nil
}

// renderChunks joins chunks, inserting a marker whenever the page changes.
func renderChunks(chunks []domain.DocumentChunk) string {
	var b strings.Builder
	page := 0
	for i := range chunks {
		if chunks[i].PageNumber != page {
			page = chunks[i].PageNumber
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "[page %d]\n", page)
		} else if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(chunks[i].Content)
	}
	return b.String()
}

// extractDocumentID extracts the ID from a URI like documind://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
