package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/documind/internal/connectors/filesystem"
	"github.com/custodia-labs/documind/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the ingested documents"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Path  string `json:"path" jsonschema:"file or directory to ingest (absolute path or file:// URI)"`
	Force bool   `json:"force,omitempty" jsonschema:"re-ingest even if identical content is already stored"`
}

// IngestOutput is the output schema for the ingest tool.
// Exactly one of File or Directory is set.
type IngestOutput struct {
	File      *domain.IngestResult    `json:"file,omitempty"`
	Directory *domain.DirectoryResult `json:"directory,omitempty"`
}

// StatsInput is the (empty) input schema for the stats tool.
type StatsInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the ingested documents, citing file and page",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Ingest a file or every supported file under a directory",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stats",
		Description: "Report document and chunk counts in the store",
	}, s.handleStats)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, domain.Answer, error) {
	if input.Question == "" {
		return nil, domain.Answer{}, fmt.Errorf("question is required: %w", domain.ErrInvalidInput)
	}
	return nil, s.ports.QA.Answer(ctx, input.Question), nil
}

func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if input.Path == "" {
		return nil, IngestOutput{}, fmt.Errorf("path is required: %w", domain.ErrInvalidInput)
	}
	path := filesystem.ResolvePath(input.Path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, IngestOutput{}, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		res := s.ports.Ingest.ProcessFile(ctx, path, input.Force)
		return nil, IngestOutput{File: &res}, nil
	}

	dir, err := s.ports.Ingest.ProcessDirectory(ctx, path, input.Force)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, IngestOutput{Directory: dir}, nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, domain.Stats, error) {
	stats, err := s.ports.Ingest.Stats(ctx)
	if err != nil {
		return nil, domain.Stats{}, err
	}
	return nil, stats, nil
}
