// Package mcp serves DocuMind over the Model Context Protocol so AI
// assistants can ask questions of, and add files to, the local store.
package mcp

import "errors"

var (
	// ErrMissingQAService is returned when the QA service is not provided.
	ErrMissingQAService = errors.New("mcp: qa service is required")

	// ErrMissingIngestService is returned when the ingest service is not provided.
	ErrMissingIngestService = errors.New("mcp: ingest service is required")
)
